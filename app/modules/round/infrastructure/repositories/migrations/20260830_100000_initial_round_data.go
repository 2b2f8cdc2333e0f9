package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating round table...")

		if _, err := db.NewCreateTable().Model((*rounddb.Round)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*rounddb.Round)(nil)).
			Index("rounds_status_tee_time_idx").
			Column("status", "tee_time").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Round table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping round table...")

		if _, err := db.NewDropTable().Model((*rounddb.Round)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Round table dropped successfully!")
		return nil
	})
}
