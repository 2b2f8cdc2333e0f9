package roundservice

import (
	"context"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// RoundOperationResult is the outcome of a round setup attempt.
type RoundOperationResult = results.OperationResult[roundevents.RoundCreatedPayloadV1, roundevents.RoundCreateFailedPayloadV1]

// ImportOperationResult is the outcome of a scorecard import attempt.
type ImportOperationResult = results.OperationResult[roundevents.RoundScorecardImportedPayloadV1, roundevents.RoundScorecardImportFailedPayloadV1]

// GolferAddOperationResult is the outcome of a roster change attempt.
type GolferAddOperationResult = results.OperationResult[roundevents.RoundGolferAddedPayloadV1, roundevents.RoundGolferAddFailedPayloadV1]

// CancelOperationResult is the outcome of a cancellation attempt.
type CancelOperationResult = results.OperationResult[roundevents.RoundCancelledPayloadV1, roundevents.RoundCancelFailedPayloadV1]

// Service is the round module's application surface.
type Service interface {
	CreateRound(ctx context.Context, payload roundevents.RoundCreateRequestedPayloadV1) (RoundOperationResult, error)
	ImportScorecard(ctx context.Context, payload roundevents.RoundScorecardImportRequestedPayloadV1) (ImportOperationResult, error)
	AddGolfer(ctx context.Context, payload roundevents.RoundGolferAddRequestedPayloadV1) (GolferAddOperationResult, error)
	CancelRound(ctx context.Context, payload roundevents.RoundCancelRequestedPayloadV1) (CancelOperationResult, error)
	StartRound(ctx context.Context, roundID sharedtypes.RoundID) error
	RecoverOverdueRounds(ctx context.Context) error
	FinalizeRound(ctx context.Context, roundID sharedtypes.RoundID) error
	GetRound(ctx context.Context, roundID sharedtypes.RoundID) (*rounddb.Round, error)
}
