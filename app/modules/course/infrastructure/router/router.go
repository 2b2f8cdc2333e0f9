// Package courserouter registers the course module's handlers on the shared
// watermill router.
package courserouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	courseevents "github.com/Black-And-White-Club/fairway-bot/app/modules/course/domain/events"
	coursehandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/handlers"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// CourseRouter wires course handlers into the message router.
type CourseRouter struct {
	logger  *slog.Logger
	Router  *message.Router
	bus     eventbus.EventBus
	helpers utils.Helpers
	tracer  trace.Tracer
	metrics handlerwrapper.ReturningMetrics
}

// NewCourseRouter creates a new CourseRouter.
func NewCourseRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	helpers utils.Helpers,
	tracer trace.Tracer,
	metrics handlerwrapper.ReturningMetrics,
) *CourseRouter {
	return &CourseRouter{
		logger:  logger,
		Router:  router,
		bus:     bus,
		helpers: helpers,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Configure registers the module's handlers.
func (r *CourseRouter) Configure(_ context.Context, handlers coursehandlers.Handlers) error {
	registerHandler(r, courseevents.CourseCreateRequestedV1, handlers.HandleCourseCreateRequest)
	return nil
}

// registerHandler registers a pure transformation-pattern handler with a
// typed payload.
func registerHandler[T any](
	r *CourseRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "course." + topic

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

func (r *CourseRouter) Close() error {
	return r.Router.Close()
}
