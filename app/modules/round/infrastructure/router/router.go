// Package roundrouter registers the round module's handlers on the shared
// watermill router.
package roundrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	roundhandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/handlers"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// RoundRouter wires round handlers into the message router.
type RoundRouter struct {
	logger  *slog.Logger
	Router  *message.Router
	bus     eventbus.EventBus
	helpers utils.Helpers
	tracer  trace.Tracer
	metrics handlerwrapper.ReturningMetrics
}

// NewRoundRouter creates a new RoundRouter.
func NewRoundRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	tracer trace.Tracer,
	metrics handlerwrapper.ReturningMetrics,
) *RoundRouter {
	return &RoundRouter{
		logger:  logger,
		Router:  router,
		bus:     bus,
		helpers: helpers,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Configure registers the module's handlers.
func (r *RoundRouter) Configure(_ context.Context, handlers roundhandlers.Handlers) error {
	registerHandler(r, roundevents.RoundCreateRequestedV1, handlers.HandleCreateRoundRequest)
	registerHandler(r, roundevents.RoundScorecardImportRequestedV1, handlers.HandleScorecardImportRequest)
	registerHandler(r, roundevents.RoundGolferAddRequestedV1, handlers.HandleGolferAddRequest)
	registerHandler(r, roundevents.RoundCancelRequestedV1, handlers.HandleCancelRequest)
	registerHandler(r, roundevents.RoundStartDueV1, handlers.HandleRoundStartDue)
	registerHandler(r, scoringevents.RoundFinalizedV1, handlers.HandleRoundFinalized)
	return nil
}

// registerHandler registers a pure transformation-pattern handler with a
// typed payload.
func registerHandler[T any](
	r *RoundRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "round." + topic

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

func (r *RoundRouter) Close() error {
	return r.Router.Close()
}
