// Package scoring assembles the scoring module: the per-round state copy,
// the game engines, and the handlers that drive them.
package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	scoringservice "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/application"
	scoringhandlers "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/handlers"
	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	scoringrouter "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/router"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// Module is the assembled scoring module.
type Module struct {
	Service    scoringservice.Service
	Router     *scoringrouter.ScoringRouter
	cancelFunc context.CancelFunc
	obs        *observability.Observability
}

// NewModule wires the scoring module into the shared router and bus.
func NewModule(
	ctx context.Context,
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	obs *observability.Observability,
	helpers utils.Helpers,
) (*Module, error) {
	repo := &scoringdb.ScoringDBImpl{DB: db}
	m := metrics.NewOperationMetrics(obs.Registry, "scoring")
	service := scoringservice.NewScoringService(repo, utils.RealClock{}, obs.Logger, m, obs.Tracer)
	handlers := scoringhandlers.NewScoringHandlers(service, obs.Logger)

	scoringRouter := scoringrouter.NewScoringRouter(obs.Logger, router, bus, helpers, obs.Tracer, m)
	if err := scoringRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure scoring router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  scoringRouter,
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
	m.obs.Logger.Info("Scoring module stopped")
}

// Close cancels the module's work.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
