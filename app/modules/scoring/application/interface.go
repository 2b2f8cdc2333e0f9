package scoringservice

import (
	"context"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// StandingsOperationResult is the outcome of a score mutation: a fresh
// standings snapshot or a rejection.
type StandingsOperationResult = results.OperationResult[scoringevents.StandingsUpdatedPayloadV1, scoringevents.ScoreRejectedPayloadV1]

// FinalizeOperationResult is the outcome of a finalize request.
type FinalizeOperationResult = results.OperationResult[scoringevents.FinalizedPayloadV1, scoringevents.FinalizeFailedPayloadV1]

// Service is the scoring module's application surface.
type Service interface {
	SeedRound(ctx context.Context, state scorecard.RoundState) error
	RecordScore(ctx context.Context, payload scoringevents.ScoreSubmittedPayloadV1) (StandingsOperationResult, error)
	ClearScore(ctx context.Context, payload scoringevents.ScoreClearedPayloadV1) (StandingsOperationResult, error)
	StartPress(ctx context.Context, payload scoringevents.PressStartedPayloadV1) (StandingsOperationResult, error)
	ApplyImport(ctx context.Context, roundID sharedtypes.RoundID, scores []roundevents.ImportedScore) (StandingsOperationResult, error)
	FinalizeRound(ctx context.Context, payload scoringevents.FinalizeRequestedPayloadV1) (FinalizeOperationResult, error)
	GetStandings(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error)
}
