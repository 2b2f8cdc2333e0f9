// Package scoringevents defines the scoring module's topics and payloads.
// Every mutation comes back as a full standings snapshot; consumers never
// apply deltas.
package scoringevents

import (
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

const (
	RoundScoreSubmittedV1 = "round.score.submitted.v1"
	RoundScoreClearedV1   = "round.score.cleared.v1"
	RoundPressStartedV1   = "round.press.started.v1"
	RoundScoreRejectedV1  = "round.score.rejected.v1"

	RoundStandingsUpdatedV1 = "round.standings.updated.v1"

	RoundFinalizeRequestedV1 = "round.finalize.requested.v1"
	RoundFinalizedV1         = "round.finalized.v1"
	RoundFinalizeFailedV1    = "round.finalize.failed.v1"
)

// Game names accepted on a press start request.
const (
	GameMatchPlay  = "match_play"
	GameBetterBall = "better_ball"
)

// ScoreSubmittedPayloadV1 records one golfer's gross score on one hole.
// Resubmitting the same hole is a correction.
type ScoreSubmittedPayloadV1 struct {
	RoundID  sharedtypes.RoundID    `json:"round_id"`
	GolferID sharedtypes.GolferID   `json:"golfer_id"`
	Hole     sharedtypes.HoleNumber `json:"hole"`
	Strokes  sharedtypes.Strokes    `json:"strokes"`
}

// ScoreClearedPayloadV1 removes a previously entered score.
type ScoreClearedPayloadV1 struct {
	RoundID  sharedtypes.RoundID    `json:"round_id"`
	GolferID sharedtypes.GolferID   `json:"golfer_id"`
	Hole     sharedtypes.HoleNumber `json:"hole"`
}

// PressStartedPayloadV1 opens a new press on a running game.
type PressStartedPayloadV1 struct {
	RoundID   sharedtypes.RoundID    `json:"round_id"`
	Game      string                 `json:"game"`
	StartHole sharedtypes.HoleNumber `json:"start_hole"`
}

// ScoreRejectedPayloadV1 reports a score mutation that could not be applied.
type ScoreRejectedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason"`
}

// StandingsUpdatedPayloadV1 is the recomputed snapshot after any accepted
// mutation.
type StandingsUpdatedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Results scorecard.Results   `json:"results"`
}

// FinalizeRequestedPayloadV1 asks for a round's standings to be locked.
type FinalizeRequestedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
}

// FinalizedPayloadV1 announces locked results. The roster rides along so the
// leaderboard can fold names and handicaps without a lookup.
type FinalizedPayloadV1 struct {
	RoundID     sharedtypes.RoundID  `json:"round_id"`
	FinalizedAt time.Time            `json:"finalized_at"`
	Golfers     []sharedtypes.Golfer `json:"golfers"`
	Results     scorecard.Results    `json:"results"`
}

// FinalizeFailedPayloadV1 reports a finalize request that could not be
// honored.
type FinalizeFailedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason"`
}
