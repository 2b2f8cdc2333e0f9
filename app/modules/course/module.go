// Package course assembles the course module: layout storage and the
// handlers that maintain it.
package course

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	courseservice "github.com/Black-And-White-Club/fairway-bot/app/modules/course/application"
	coursehandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	courserouter "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/router"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// Module is the assembled course module.
type Module struct {
	Service    courseservice.Service
	Router     *courserouter.CourseRouter
	cancelFunc context.CancelFunc
	obs        *observability.Observability
}

// NewModule wires the course module into the shared router and bus.
func NewModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	obs *observability.Observability,
	helpers utils.Helpers,
) (*Module, error) {
	repo := &coursedb.CourseDBImpl{DB: db}
	m := metrics.NewOperationMetrics(obs.Registry, "course")
	service := courseservice.NewCourseService(repo, obs.Logger, m, obs.Tracer)
	handlers := coursehandlers.NewCourseHandlers(service, obs.Logger)

	courseRouter := courserouter.NewCourseRouter(obs.Logger, router, bus, helpers, obs.Tracer, m)
	if err := courseRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure course router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  courseRouter,
		obs:     obs,
	}, nil
}

// Run blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()
	<-ctx.Done()
	m.obs.Logger.Info("Course module stopped")
}

// Close cancels the module's work.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
