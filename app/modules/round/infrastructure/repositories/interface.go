package rounddb

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Repository is the round storage surface.
type Repository interface {
	CreateRound(ctx context.Context, round *Round) error
	GetRound(ctx context.Context, id sharedtypes.RoundID) (*Round, error)
	UpdateStatus(ctx context.Context, id sharedtypes.RoundID, status string) error
	UpdateState(ctx context.Context, id sharedtypes.RoundID, state *scorecard.RoundState) error
	ListScheduledBefore(ctx context.Context, cutoff time.Time) ([]Round, error)
}
