package coursemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// layout builds the 18 holes from parallel par/rank/yardage rows.
func layout(pars, ranks, yards [18]int) []sharedtypes.Hole {
	holes := make([]sharedtypes.Hole, 18)
	for i := range holes {
		holes[i] = sharedtypes.Hole{
			Number:       sharedtypes.HoleNumber(i + 1),
			Par:          pars[i],
			HandicapRank: ranks[i],
			Yardage:      yards[i],
		}
	}
	return holes
}

func seedCourses() []coursedb.Course {
	return []coursedb.Course{
		{
			ID:    "pebble-creek",
			Name:  "Pebble Creek Golf Club",
			City:  "Cedar Falls",
			State: "IA",
			Holes: layout(
				[18]int{4, 5, 3, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 3, 4, 5, 4},
				[18]int{5, 13, 17, 1, 9, 15, 11, 3, 7, 8, 16, 12, 2, 6, 18, 4, 14, 10},
				[18]int{385, 520, 165, 430, 400, 180, 535, 415, 395, 390, 170, 510, 440, 405, 155, 425, 525, 380},
			),
			Tees: []sharedtypes.Tee{
				{Name: "blue", Rating: 72.4, Slope: 128, Par: 72, Yards: 6825},
				{Name: "white", Rating: 70.1, Slope: 122, Par: 72, Yards: 6320},
				{Name: "red", Rating: 68.3, Slope: 115, Par: 72, Yards: 5710},
			},
		},
		{
			ID:    "harbor-pines",
			Name:  "Harbor Pines Golf Club",
			City:  "Egg Harbor",
			State: "NJ",
			Holes: layout(
				[18]int{4, 4, 5, 3, 4, 4, 3, 5, 4, 5, 4, 3, 4, 4, 5, 3, 4, 4},
				[18]int{7, 3, 11, 17, 1, 9, 15, 13, 5, 10, 2, 18, 6, 8, 14, 16, 4, 12},
				[18]int{370, 410, 505, 175, 445, 390, 160, 515, 400, 530, 435, 150, 415, 395, 540, 185, 420, 385},
			),
			Tees: []sharedtypes.Tee{
				{Name: "black", Rating: 73.1, Slope: 131, Par: 72, Yards: 6985},
				{Name: "white", Rating: 70.6, Slope: 124, Par: 72, Yards: 6410},
			},
		},
	}
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Seeding course catalog...")

		courses := seedCourses()
		if _, err := db.NewInsert().
			Model(&courses).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Course catalog seeded successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Removing seeded courses...")

		for _, c := range seedCourses() {
			if _, err := db.NewDelete().
				Model((*coursedb.Course)(nil)).
				Where("id = ?", c.ID).
				Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Seeded courses removed successfully!")
		return nil
	})
}
