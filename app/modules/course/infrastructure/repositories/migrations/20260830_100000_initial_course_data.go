package coursemigrations

import (
	"context"
	"fmt"

	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating course table...")

		if _, err := db.NewCreateTable().Model((*coursedb.Course)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Course table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping course table...")

		if _, err := db.NewDropTable().Model((*coursedb.Course)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Course table dropped successfully!")
		return nil
	})
}
