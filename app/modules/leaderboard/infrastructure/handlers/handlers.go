// Package leaderboardhandlers maps leaderboard topics onto service
// operations.
package leaderboardhandlers

import (
	"context"
	"fmt"
	"log/slog"

	leaderboardservice "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/application"
	leaderboardevents "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/domain/events"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
)

// Handlers is the leaderboard module's handler surface.
type Handlers interface {
	HandleRoundFinalized(ctx context.Context, payload *scoringevents.FinalizedPayloadV1) ([]handlerwrapper.Result, error)
}

// LeaderboardHandlers folds finalized rounds into the aggregates.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

var _ Handlers = (*LeaderboardHandlers)(nil)

// NewLeaderboardHandlers creates a new LeaderboardHandlers.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger) *LeaderboardHandlers {
	return &LeaderboardHandlers{service: service, logger: logger}
}

// HandleRoundFinalized folds the round and publishes the updated aggregate.
// Already folded rounds produce no output.
func (h *LeaderboardHandlers) HandleRoundFinalized(ctx context.Context, payload *scoringevents.FinalizedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Folding finalized round into leaderboard",
		attr.RoundID("round_id", payload.RoundID),
	)

	updated, err := h.service.ProcessRoundFinalized(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fold finalized round: %w", err)
	}
	if updated == nil {
		return nil, nil
	}
	return []handlerwrapper.Result{{Topic: leaderboardevents.LeaderboardUpdatedV1, Payload: updated}}, nil
}
