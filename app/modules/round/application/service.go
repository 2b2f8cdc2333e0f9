// Package roundservice sets rounds up: it resolves the course and tees,
// computes each golfer's course handicap, builds the initial scorecard state,
// and schedules the tee-time jobs.
package roundservice

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/round/application/parsers"
	roundqueue "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/queue"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	roundutil "github.com/Black-And-White-Club/fairway-bot/app/modules/round/utils"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// CourseReader is the slice of the course module the round service needs.
// Courses are read through the course module's service, never its tables.
type CourseReader interface {
	GetCourse(ctx context.Context, courseID string) (*Course, error)
}

// Course is re-exported course layout data. Declared here so the round
// service does not import the course module's storage package.
type Course struct {
	ID    string
	Name  string
	Holes []sharedtypes.Hole
	Tees  []sharedtypes.Tee
}

// Tee returns the named tee, or false when the course has none by that name.
func (c *Course) Tee(name string) (sharedtypes.Tee, bool) {
	for _, t := range c.Tees {
		if t.Name == name {
			return t, true
		}
	}
	return sharedtypes.Tee{}, false
}

// RoundService implements Service.
type RoundService struct {
	repo       rounddb.Repository
	courses    CourseReader
	queue      roundqueue.QueueService
	parsers    *parsers.Factory
	timeParser *roundutil.TimeParser
	clock      utils.Clock
	logger     *slog.Logger
	metrics    metrics.OperationMetrics
	tracer     trace.Tracer
}

var _ Service = (*RoundService)(nil)

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	courses CourseReader,
	queue roundqueue.QueueService,
	clock utils.Clock,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
) *RoundService {
	return &RoundService{
		repo:       repo,
		courses:    courses,
		queue:      queue,
		parsers:    parsers.NewFactory(),
		timeParser: roundutil.NewTimeParser(),
		clock:      clock,
		logger:     logger,
		metrics:    m,
		tracer:     tracer,
	}
}

// GetRound fetches one stored round.
func (s *RoundService) GetRound(ctx context.Context, roundID sharedtypes.RoundID) (*rounddb.Round, error) {
	return s.repo.GetRound(ctx, roundID)
}
