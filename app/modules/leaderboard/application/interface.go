package leaderboardservice

import (
	"context"

	leaderboardevents "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/domain/events"
	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Service is the leaderboard module's application surface.
type Service interface {
	// ProcessRoundFinalized folds one finalized round into the aggregates.
	// A nil payload with nil error means the round was already folded.
	ProcessRoundFinalized(ctx context.Context, payload scoringevents.FinalizedPayloadV1) (*leaderboardevents.LeaderboardUpdatedPayloadV1, error)
	GetLeaderboard(ctx context.Context) ([]leaderboarddb.Entry, error)
	GetTrend(ctx context.Context, golferID sharedtypes.GolferID) ([]leaderboarddb.TrendPoint, error)
	RenderTrendChart(ctx context.Context, golferID sharedtypes.GolferID) ([]byte, error)
}
