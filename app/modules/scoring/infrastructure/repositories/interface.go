package scoringdb

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Repository is the scoring storage surface.
type Repository interface {
	SeedRoundState(ctx context.Context, state *scorecard.RoundState) error
	GetRoundState(ctx context.Context, roundID sharedtypes.RoundID) (*RoundStateRecord, error)
	SaveRoundState(ctx context.Context, state *scorecard.RoundState) error
	MarkFinalized(ctx context.Context, roundID sharedtypes.RoundID, at time.Time) error
	SaveStandings(ctx context.Context, roundID sharedtypes.RoundID, results *scorecard.Results) error
	GetStandings(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error)
}
