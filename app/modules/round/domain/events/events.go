// Package roundevents defines the round module's topics and payloads. Round
// lifecycle events carry the full round state so downstream modules never
// reach into this module's tables.
package roundevents

import (
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

const (
	RoundCreateRequestedV1 = "round.create.requested.v1"
	RoundCreatedV1         = "round.created.v1"
	RoundCreateFailedV1    = "round.create.failed.v1"

	RoundScorecardImportRequestedV1 = "round.scorecard.import.requested.v1"
	RoundScorecardImportedV1        = "round.scorecard.imported.v1"
	RoundScorecardImportFailedV1    = "round.scorecard.import.failed.v1"

	RoundGolferAddRequestedV1 = "round.golfer.add.requested.v1"
	RoundGolferAddedV1        = "round.golfer.added.v1"
	RoundGolferAddFailedV1    = "round.golfer.add.failed.v1"

	RoundCancelRequestedV1 = "round.cancel.requested.v1"
	RoundCancelledV1       = "round.cancelled.v1"
	RoundCancelFailedV1    = "round.cancel.failed.v1"

	RoundReminderDueV1 = "round.reminder.due.v1"
	RoundStartDueV1    = "round.start.due.v1"
)

// RoundGolferInput is one golfer on a create request: identity plus the tee
// they play from, which drives the course handicap computation.
type RoundGolferInput struct {
	GolferID      sharedtypes.GolferID       `json:"golfer_id"`
	Name          string                     `json:"name"`
	HandicapIndex *sharedtypes.HandicapIndex `json:"handicap_index,omitempty"`
	TeeName       string                     `json:"tee_name,omitempty"`
	Side          *sharedtypes.TeamSide      `json:"side,omitempty"`
}

// RoundCreateRequestedPayloadV1 asks the round module to set up a round.
type RoundCreateRequestedPayloadV1 struct {
	CourseID  string                  `json:"course_id"`
	Format    sharedtypes.RoundFormat `json:"format"`
	TeeTime   string                  `json:"tee_time"`
	Timezone  string                  `json:"timezone"`
	CreatedBy sharedtypes.GolferID    `json:"created_by"`
	Golfers   []RoundGolferInput      `json:"golfers"`
	Games     scorecard.GameConfig    `json:"games"`
}

// RoundCreatedPayloadV1 announces a stored round, carrying its initial state.
type RoundCreatedPayloadV1 struct {
	RoundID  sharedtypes.RoundID  `json:"round_id"`
	CourseID string               `json:"course_id"`
	TeeTime  time.Time            `json:"tee_time"`
	State    scorecard.RoundState `json:"state"`
}

// RoundCreateFailedPayloadV1 reports a rejected round setup.
type RoundCreateFailedPayloadV1 struct {
	CourseID string `json:"course_id"`
	Reason   string `json:"reason"`
}

// ImportedScore is one cell parsed out of an uploaded scorecard.
type ImportedScore struct {
	GolferID sharedtypes.GolferID   `json:"golfer_id"`
	Hole     sharedtypes.HoleNumber `json:"hole"`
	Strokes  sharedtypes.Strokes    `json:"strokes"`
}

// RoundScorecardImportRequestedPayloadV1 asks for a scorecard file to be
// parsed and applied to a round. Content is the raw file body.
type RoundScorecardImportRequestedPayloadV1 struct {
	RoundID  sharedtypes.RoundID `json:"round_id"`
	Filename string              `json:"filename"`
	Content  []byte              `json:"content"`
}

// RoundScorecardImportedPayloadV1 carries the parsed scores for scoring to
// apply in one batch.
type RoundScorecardImportedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Scores  []ImportedScore     `json:"scores"`
}

// RoundScorecardImportFailedPayloadV1 reports an unusable scorecard upload.
type RoundScorecardImportFailedPayloadV1 struct {
	RoundID  sharedtypes.RoundID `json:"round_id"`
	Filename string              `json:"filename"`
	Reason   string              `json:"reason"`
}

// RoundGolferAddRequestedPayloadV1 asks for one more golfer on a round that
// has not teed off yet.
type RoundGolferAddRequestedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Golfer  RoundGolferInput    `json:"golfer"`
}

// RoundGolferAddedPayloadV1 announces the updated roster, carrying the
// rebuilt round state so scoring can reseed its copy.
type RoundGolferAddedPayloadV1 struct {
	RoundID sharedtypes.RoundID  `json:"round_id"`
	State   scorecard.RoundState `json:"state"`
}

// RoundGolferAddFailedPayloadV1 reports a rejected roster change.
type RoundGolferAddFailedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason"`
}

// RoundCancelRequestedPayloadV1 asks for a round to be called off.
type RoundCancelRequestedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason,omitempty"`
}

// RoundCancelledPayloadV1 announces a cancelled round.
type RoundCancelledPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason,omitempty"`
}

// RoundCancelFailedPayloadV1 reports a rejected cancellation.
type RoundCancelFailedPayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	Reason  string              `json:"reason"`
}

// RoundReminderDuePayloadV1 fires when a scheduled reminder comes due.
type RoundReminderDuePayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	TeeTime time.Time           `json:"tee_time"`
}

// RoundStartDuePayloadV1 fires at the scheduled tee time.
type RoundStartDuePayloadV1 struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
}
