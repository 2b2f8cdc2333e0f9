// Package scoringrouter registers the scoring module's handlers on the
// shared watermill router.
package scoringrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	scoringhandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/handlers"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// ScoringRouter wires scoring handlers into the message router.
type ScoringRouter struct {
	logger  *slog.Logger
	Router  *message.Router
	bus     eventbus.EventBus
	helpers utils.Helpers
	tracer  trace.Tracer
	metrics handlerwrapper.ReturningMetrics
}

// NewScoringRouter creates a new ScoringRouter.
func NewScoringRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	tracer trace.Tracer,
	metrics handlerwrapper.ReturningMetrics,
) *ScoringRouter {
	return &ScoringRouter{
		logger:  logger,
		Router:  router,
		bus:     bus,
		helpers: helpers,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Configure registers the module's handlers.
func (r *ScoringRouter) Configure(_ context.Context, handlers scoringhandlers.Handlers) error {
	registerHandler(r, roundevents.RoundCreatedV1, handlers.HandleRoundCreated)
	registerHandler(r, roundevents.RoundGolferAddedV1, handlers.HandleGolferAdded)
	registerHandler(r, roundevents.RoundScorecardImportedV1, handlers.HandleScorecardImported)
	registerHandler(r, scoringevents.RoundScoreSubmittedV1, handlers.HandleScoreSubmitted)
	registerHandler(r, scoringevents.RoundScoreClearedV1, handlers.HandleScoreCleared)
	registerHandler(r, scoringevents.RoundPressStartedV1, handlers.HandlePressStarted)
	registerHandler(r, scoringevents.RoundFinalizeRequestedV1, handlers.HandleFinalizeRequest)
	return nil
}

// registerHandler registers a pure transformation-pattern handler with a
// typed payload.
func registerHandler[T any](
	r *ScoringRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "scoring." + topic

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

func (r *ScoringRouter) Close() error {
	return r.Router.Close()
}
