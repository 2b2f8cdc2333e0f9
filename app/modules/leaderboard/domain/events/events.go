// Package leaderboardevents defines the leaderboard module's topics and
// payloads.
package leaderboardevents

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

const (
	LeaderboardUpdatedV1 = "leaderboard.updated.v1"
)

// EntryView is one golfer's aggregate line as published after a fold.
type EntryView struct {
	GolferID         sharedtypes.GolferID `json:"golfer_id"`
	Name             string               `json:"name"`
	RoundsPlayed     int                  `json:"rounds_played"`
	TotalToPar       int                  `json:"total_to_par"`
	AvgToPar         float64              `json:"avg_to_par"`
	BestToPar        *int                 `json:"best_to_par,omitempty"`
	StablefordPoints int                  `json:"stableford_points"`
	MatchWins        int                  `json:"match_wins"`
	LastPlayed       time.Time            `json:"last_played"`
}

// LeaderboardUpdatedPayloadV1 announces the aggregate after a finalized
// round was folded in.
type LeaderboardUpdatedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Entries []EntryView         `json:"entries"`
}
