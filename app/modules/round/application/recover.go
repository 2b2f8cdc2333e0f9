package roundservice

import (
	"context"
	"fmt"

	roundqueue "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/queue"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
)

// RecoverOverdueRounds starts scheduled rounds whose tee time passed while
// the process was down. Rounds that still hold a pending start job are left
// alone; River fires those itself once workers are running.
func (s *RoundService) RecoverOverdueRounds(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "RecoverOverdueRounds")
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "RecoverOverdueRounds")
	rounds, err := s.repo.ListScheduledBefore(ctx, s.clock.Now())
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "RecoverOverdueRounds")
		return fmt.Errorf("RecoverOverdueRounds: %w", err)
	}
	if len(rounds) == 0 {
		s.metrics.RecordOperationSuccess(ctx, "RecoverOverdueRounds")
		return nil
	}

	started := 0
	for _, round := range rounds {
		jobs, err := s.queue.GetScheduledJobs(ctx, round.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to inspect jobs for overdue round",
				attr.RoundID("round_id", round.ID), attr.Error(err))
			continue
		}
		if hasPendingStartJob(jobs) {
			continue
		}
		if err := s.StartRound(ctx, round.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to start overdue round",
				attr.RoundID("round_id", round.ID), attr.Error(err))
			continue
		}
		started++
	}

	s.logger.InfoContext(ctx, "Overdue round sweep finished",
		attr.Int("overdue", len(rounds)),
		attr.Int("started", started),
	)
	s.metrics.RecordOperationSuccess(ctx, "RecoverOverdueRounds")
	return nil
}

func hasPendingStartJob(jobs []roundqueue.JobInfo) bool {
	for _, job := range jobs {
		if job.Kind != "round_start" {
			continue
		}
		switch job.State {
		case "available", "scheduled", "running", "retryable":
			return true
		}
	}
	return false
}
