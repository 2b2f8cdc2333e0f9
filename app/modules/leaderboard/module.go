// Package leaderboard assembles the leaderboard module: cross-round golfer
// aggregates and trend charts.
package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	leaderboardservice "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// Module is the assembled leaderboard module.
type Module struct {
	Service    leaderboardservice.Service
	Router     *leaderboardrouter.LeaderboardRouter
	cancelFunc context.CancelFunc
	obs        *observability.Observability
}

// NewModule wires the leaderboard module into the shared router and bus.
func NewModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	obs *observability.Observability,
	helpers utils.Helpers,
) (*Module, error) {
	repo := &leaderboarddb.LeaderboardDBImpl{DB: db}
	m := metrics.NewOperationMetrics(obs.Registry, "leaderboard")
	service := leaderboardservice.NewLeaderboardService(repo, obs.Logger, m, obs.Tracer)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, obs.Logger)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(obs.Logger, router, bus, helpers, obs.Tracer, m)
	if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  leaderboardRouter,
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
	m.obs.Logger.Info("Leaderboard module stopped")
}

// Close cancels the module's work.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
