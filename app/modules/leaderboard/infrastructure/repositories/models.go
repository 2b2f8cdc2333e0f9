package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Entry is one golfer's running aggregate across finalized rounds. ToPar
// figures are net where the golfer had a course handicap, gross otherwise.
type Entry struct {
	bun.BaseModel `bun:"table:leaderboard_entries"`

	GolferID         sharedtypes.GolferID `bun:"golfer_id,pk"`
	Name             string               `bun:"name,notnull"`
	RoundsPlayed     int                  `bun:"rounds_played,notnull"`
	TotalToPar       int                  `bun:"total_to_par,notnull"`
	BestToPar        *int                 `bun:"best_to_par"`
	StablefordPoints int                  `bun:"stableford_points,notnull,default:0"`
	MatchWins        int                  `bun:"match_wins,notnull,default:0"`
	LastPlayed       time.Time            `bun:"last_played,notnull"`
	UpdatedAt        time.Time            `bun:"updated_at,notnull,default:current_timestamp"`
}

// AvgToPar is the mean to-par over the folded rounds.
func (e *Entry) AvgToPar() float64 {
	if e.RoundsPlayed == 0 {
		return 0
	}
	return float64(e.TotalToPar) / float64(e.RoundsPlayed)
}

// TrendPoint is one golfer's result in one finalized round, kept for trend
// charts. The (golfer, round) pair is unique so event redelivery folds a
// round at most once.
type TrendPoint struct {
	bun.BaseModel `bun:"table:golfer_trends"`

	ID       int64                `bun:"id,pk,autoincrement"`
	GolferID sharedtypes.GolferID `bun:"golfer_id,notnull,unique:golfer_trends_golfer_round_key"`
	RoundID  sharedtypes.RoundID  `bun:"round_id,notnull,unique:golfer_trends_golfer_round_key"`
	PlayedAt time.Time            `bun:"played_at,notnull"`
	ToPar    int                  `bun:"to_par,notnull"`
}
