package scoringmigrations

import (
	"context"
	"fmt"

	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoring tables...")

		if _, err := db.NewCreateTable().Model((*scoringdb.RoundStateRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoringdb.StandingsRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scoring tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoring tables...")

		if _, err := db.NewDropTable().Model((*scoringdb.StandingsRecord)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*scoringdb.RoundStateRecord)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scoring tables dropped successfully!")
		return nil
	})
}
