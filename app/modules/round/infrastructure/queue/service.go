// Package roundqueue schedules tee-time jobs for the round module on River.
// Start and reminder jobs sit in Postgres until they come due, then publish
// their events onto the bus.
package roundqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// QueueService is the scheduling surface the round service depends on.
type QueueService interface {
	ScheduleRoundStart(ctx context.Context, roundID sharedtypes.RoundID, startTime time.Time) error
	ScheduleRoundReminder(ctx context.Context, roundID sharedtypes.RoundID, reminderTime, teeTime time.Time) error
	CancelRoundJobs(ctx context.Context, roundID sharedtypes.RoundID) error
	GetScheduledJobs(ctx context.Context, roundID sharedtypes.RoundID) ([]JobInfo, error)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service is the River-backed QueueService implementation.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	db      *bun.DB
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

// NewService builds the River client on its own pgx pool. River requires pgx
// directly, so the bun DB is only used for job queries.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, m metrics.OperationMetrics, eventBus eventbus.EventBus, helpers utils.Helpers) (*Service, error) {
	ctxLogger := logger.With(attr.String("component", "round_queue"))

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN for River: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool for River: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database for River: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRoundStartWorker(ctxLogger, eventBus, helpers))
	river.AddWorker(workers, NewRoundReminderWorker(ctxLogger, eventBus, helpers))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			"round":            {MaxWorkers: 25},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	ctxLogger.InfoContext(ctx, "Round queue service initialized")
	return &Service{
		client:  riverClient,
		pool:    pool,
		db:      bunDB,
		logger:  ctxLogger,
		metrics: m,
	}, nil
}

// Start begins job processing.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Round queue service started")
	return nil
}

// Stop drains workers and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Round queue service stopped")
	return nil
}

// ScheduleRoundStart schedules the start-due job at the tee time. Times too
// close to now are rejected so the job system never races its own insert.
func (s *Service) ScheduleRoundStart(ctx context.Context, roundID sharedtypes.RoundID, startTime time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_round_start")

	ctxLogger := s.logger.With(
		attr.RoundID("round_id", roundID),
		attr.Time("start_time", startTime),
	)

	now := time.Now()
	if startTime.Before(now.Add(5 * time.Second)) {
		s.metrics.RecordOperationFailure(ctx, "schedule_round_start")
		return fmt.Errorf("start time must be at least 5 seconds in the future")
	}

	res, err := s.client.Insert(ctx, RoundStartJob{RoundID: roundID}, &river.InsertOpts{
		Queue:       "round",
		ScheduledAt: startTime,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		ctxLogger.ErrorContext(ctx, "Failed to schedule round start job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_round_start")
		return fmt.Errorf("failed to schedule round start job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_round_start")
	s.metrics.RecordOperationDuration(ctx, "schedule_round_start", time.Since(start))
	ctxLogger.InfoContext(ctx, "Round start job scheduled",
		attr.Duration("delay", startTime.Sub(now)),
		attr.Int64("job_id", res.Job.ID),
	)
	return nil
}

// ScheduleRoundReminder schedules the reminder-due job. A reminder time
// already in the past is a skip, not a failure.
func (s *Service) ScheduleRoundReminder(ctx context.Context, roundID sharedtypes.RoundID, reminderTime, teeTime time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_round_reminder")

	ctxLogger := s.logger.With(
		attr.RoundID("round_id", roundID),
		attr.Time("reminder_time", reminderTime),
	)

	now := time.Now()
	if reminderTime.Before(now.Add(5 * time.Second)) {
		ctxLogger.InfoContext(ctx, "Reminder time already passed, skipping")
		s.metrics.RecordOperationSuccess(ctx, "schedule_round_reminder")
		return nil
	}

	res, err := s.client.Insert(ctx, RoundReminderJob{RoundID: roundID, TeeTime: teeTime}, &river.InsertOpts{
		Queue:       "round",
		ScheduledAt: reminderTime,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		ctxLogger.ErrorContext(ctx, "Failed to schedule round reminder job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_round_reminder")
		return fmt.Errorf("failed to schedule round reminder job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_round_reminder")
	s.metrics.RecordOperationDuration(ctx, "schedule_round_reminder", time.Since(start))
	ctxLogger.InfoContext(ctx, "Round reminder job scheduled",
		attr.Duration("delay", reminderTime.Sub(now)),
		attr.Int64("job_id", res.Job.ID),
	)
	return nil
}

// CancelRoundJobs cancels pending start and reminder jobs for a round.
func (s *Service) CancelRoundJobs(ctx context.Context, roundID sharedtypes.RoundID) error {
	s.metrics.RecordOperationAttempt(ctx, "cancel_round_jobs")

	ctxLogger := s.logger.With(attr.RoundID("round_id", roundID))

	type riverJobRow struct {
		ID   int64  `bun:"id"`
		Kind string `bun:"kind"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind").
		Where("kind IN (?, ?)", "round_start", "round_reminder").
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'round_id' = ?", roundID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "cancel_round_jobs")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			ctxLogger.WarnContext(ctx, "Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.String("job_kind", job.Kind),
				attr.Error(err),
			)
			continue
		}
		cancelled++
	}

	s.metrics.RecordOperationSuccess(ctx, "cancel_round_jobs")
	ctxLogger.InfoContext(ctx, "Round jobs cancelled",
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelled),
	)
	return nil
}

// GetScheduledJobs lists this round's jobs for debugging.
func (s *Service) GetScheduledJobs(ctx context.Context, roundID sharedtypes.RoundID) ([]JobInfo, error) {
	s.metrics.RecordOperationAttempt(ctx, "get_scheduled_jobs")

	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		CreatedAt   time.Time  `bun:"created_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind IN (?, ?)", "round_start", "round_reminder").
		Where("args->>'round_id' = ?", roundID.String()).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "get_scheduled_jobs")
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			RoundID:     roundID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "get_scheduled_jobs")
	return result, nil
}
