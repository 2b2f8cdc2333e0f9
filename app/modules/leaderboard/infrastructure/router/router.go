// Package leaderboardrouter registers the leaderboard module's handlers on
// the shared watermill router.
package leaderboardrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	leaderboardhandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/handlers"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// LeaderboardRouter wires leaderboard handlers into the message router.
type LeaderboardRouter struct {
	logger  *slog.Logger
	Router  *message.Router
	bus     eventbus.EventBus
	helpers utils.Helpers
	tracer  trace.Tracer
	metrics handlerwrapper.ReturningMetrics
}

// NewLeaderboardRouter creates a new LeaderboardRouter.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	tracer trace.Tracer,
	metrics handlerwrapper.ReturningMetrics,
) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:  logger,
		Router:  router,
		bus:     bus,
		helpers: helpers,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Configure registers the module's handlers.
func (r *LeaderboardRouter) Configure(_ context.Context, handlers leaderboardhandlers.Handlers) error {
	registerHandler(r, scoringevents.RoundFinalizedV1, handlers.HandleRoundFinalized)
	return nil
}

// registerHandler registers a pure transformation-pattern handler with a
// typed payload.
func registerHandler[T any](
	r *LeaderboardRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "leaderboard." + topic

	r.Router.AddHandler(
		handlerName,
		topic,
		r.bus,
		"", // destination comes from message metadata
		r.bus,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			r.logger,
			r.tracer,
			r.helpers,
			r.metrics,
			handler,
		),
	)
}

func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
