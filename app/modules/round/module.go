// Package round assembles the round module: setup, tee-time scheduling, and
// scorecard imports.
package round

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/fairway-bot/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/handlers"
	roundqueue "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/queue"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	roundrouter "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/router"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// Module is the assembled round module.
type Module struct {
	Service    roundservice.Service
	Router     *roundrouter.RoundRouter
	Queue      roundqueue.QueueService
	cancelFunc context.CancelFunc
	obs        *observability.Observability
}

// courseReaderAdapter narrows the course repository to the slice the round
// service needs.
type courseReaderAdapter struct {
	repo coursedb.Repository
}

func (a courseReaderAdapter) GetCourse(ctx context.Context, courseID string) (*roundservice.Course, error) {
	c, err := a.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &roundservice.Course{
		ID:    c.ID,
		Name:  c.Name,
		Holes: c.Holes,
		Tees:  c.Tees,
	}, nil
}

// NewModule wires the round module into the shared router and bus. The DSN
// feeds River's own pgx pool.
func NewModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	obs *observability.Observability,
	helpers utils.Helpers,
	dsn string,
) (*Module, error) {
	repo := &rounddb.RoundDBImpl{DB: db}
	courses := courseReaderAdapter{repo: &coursedb.CourseDBImpl{DB: db}}
	m := metrics.NewOperationMetrics(obs.Registry, "round")

	queue, err := roundqueue.NewService(ctx, db, obs.Logger, dsn, m, bus, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create round queue: %w", err)
	}

	service := roundservice.NewRoundService(repo, courses, queue, utils.RealClock{}, obs.Logger, m, obs.Tracer)
	handlers := roundhandlers.NewRoundHandlers(service, obs.Logger)

	roundRouter := roundrouter.NewRoundRouter(obs.Logger, router, bus, helpers, obs.Tracer, m)
	if err := roundRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure round router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  roundRouter,
		Queue:   queue,
		obs:     obs,
	}, nil
}

// Run starts the job queue and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if err := m.Queue.Start(ctx); err != nil {
		m.obs.Logger.Error("Failed to start round queue", "error", err)
		return
	}

	// Tee times that passed while the process was down get their status flip
	// here instead of from a job that never fired.
	if err := m.Service.RecoverOverdueRounds(ctx); err != nil {
		m.obs.Logger.Error("Overdue round sweep failed", "error", err)
	}

	<-ctx.Done()

	stopCtx := context.WithoutCancel(ctx)
	if err := m.Queue.Stop(stopCtx); err != nil {
		m.obs.Logger.Error("Failed to stop round queue", "error", err)
	}
	m.obs.Logger.Info("Round module stopped")
}

// Close cancels the module's work.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
