// Package app assembles the modules, the event bus, and the HTTP read API
// into one process.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmmetrics "github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/fairway-bot/app/api"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/course"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/round"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring"
	"github.com/Black-And-White-Club/fairway-bot/config"
	"github.com/Black-And-White-Club/fairway-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// App owns every long-lived component of the process.
type App struct {
	Config        *config.Config
	Observability *observability.Observability

	db       *bun.DB
	eventBus eventbus.EventBus
	router   *message.Router

	courseModule      *course.Module
	roundModule       *round.Module
	scoringModule     *scoring.Module
	leaderboardModule *leaderboard.Module

	apiServer *api.Server
}

// Initialize builds every component. Nothing starts serving until Run.
func (a *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	a.Config = cfg
	a.Observability = obs
	logger := obs.Logger

	db, err := bundb.NewDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db

	// Without a NATS URL the process runs on its in-memory bus. Fine for a
	// single instance; events do not survive a restart.
	if cfg.NATS.URL == "" {
		logger.Warn("NATS URL not set, using in-process event bus")
		a.eventBus = eventbus.NewInMemoryBus(logger)
	} else {
		bus, err := eventbus.NewJetStreamBus(cfg.NATS.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		a.eventBus = bus
	}

	router, err := newRouter(logger, obs.Registry)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}
	a.router = router

	helpers := utils.NewHelpers(logger)

	if a.courseModule, err = course.NewModule(ctx, db, a.eventBus, router, obs, helpers); err != nil {
		return fmt.Errorf("failed to initialize course module: %w", err)
	}
	if a.roundModule, err = round.NewModule(ctx, db, a.eventBus, router, obs, helpers, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("failed to initialize round module: %w", err)
	}
	if a.scoringModule, err = scoring.NewModule(ctx, db, a.eventBus, router, obs, helpers); err != nil {
		return fmt.Errorf("failed to initialize scoring module: %w", err)
	}
	if a.leaderboardModule, err = leaderboard.NewModule(ctx, db, a.eventBus, router, obs, helpers); err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	a.apiServer = api.NewServer(cfg.HTTP, obs, api.Services{
		Courses:     a.courseModule.Service,
		Rounds:      a.roundModule.Service,
		Scoring:     a.scoringModule.Service,
		Leaderboard: a.leaderboardModule.Service,
	})

	return nil
}

// newRouter builds the shared message router every module registers its
// handlers on. Prometheus router metrics attach here, once, so the four
// modules never race to register the same collectors.
func newRouter(logger *slog.Logger, registry *prometheus.Registry) (*message.Router, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, err
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Multiplier:      2,
			Logger:          wmLogger,
		}.Middleware,
	)

	metricsBuilder := wmmetrics.NewPrometheusMetricsBuilder(registry, "", "")
	metricsBuilder.AddPrometheusRouterMetrics(router)
	return router, nil
}

// Run serves until ctx is canceled, then drains everything.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.router.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Router stopped unexpectedly", "error", err)
		}
	}()

	// Handlers register before the router runs; wait so modules never race
	// their own subscriptions.
	select {
	case <-a.router.Running():
	case <-ctx.Done():
		return ctx.Err()
	}

	wg.Add(4)
	go a.courseModule.Run(ctx, &wg)
	go a.roundModule.Run(ctx, &wg)
	go a.scoringModule.Run(ctx, &wg)
	go a.leaderboardModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.apiServer.Start(); err != nil {
			logger.Error("HTTP API stopped unexpectedly", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP API shutdown failed", "error", err)
	}

	wg.Wait()
	a.Close()
	return nil
}

// Close releases every connection. Safe to call once after Run returns.
func (a *App) Close() {
	logger := a.Observability.Logger

	if a.router != nil {
		if err := a.router.Close(); err != nil {
			logger.Error("Router close failed", "error", err)
		}
	}
	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			logger.Error("Event bus close failed", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Error("Database close failed", "error", err)
		}
	}
	logger.Info("Application stopped")
}
