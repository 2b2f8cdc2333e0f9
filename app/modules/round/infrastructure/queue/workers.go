package roundqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/eventbus"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// RoundStartWorker publishes round.start.due.v1 when a start job comes due.
type RoundStartWorker struct {
	river.WorkerDefaults[RoundStartJob]
	logger   *slog.Logger
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

func NewRoundStartWorker(logger *slog.Logger, eventBus eventbus.EventBus, helpers utils.Helpers) *RoundStartWorker {
	return &RoundStartWorker{logger: logger, eventBus: eventBus, helpers: helpers}
}

func (w *RoundStartWorker) Work(ctx context.Context, job *river.Job[RoundStartJob]) error {
	w.logger.InfoContext(ctx, "Round start job firing",
		attr.RoundID("round_id", job.Args.RoundID),
		attr.Int64("job_id", job.ID),
	)

	payload := roundevents.RoundStartDuePayloadV1{RoundID: job.Args.RoundID}
	msg, err := w.helpers.CreateNewMessage(payload, roundevents.RoundStartDueV1)
	if err != nil {
		return fmt.Errorf("failed to build round start message: %w", err)
	}

	if err := w.eventBus.Publish(roundevents.RoundStartDueV1, msg); err != nil {
		return fmt.Errorf("failed to publish round start event: %w", err)
	}
	return nil
}

// RoundReminderWorker publishes round.reminder.due.v1 when a reminder job
// comes due.
type RoundReminderWorker struct {
	river.WorkerDefaults[RoundReminderJob]
	logger   *slog.Logger
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

func NewRoundReminderWorker(logger *slog.Logger, eventBus eventbus.EventBus, helpers utils.Helpers) *RoundReminderWorker {
	return &RoundReminderWorker{logger: logger, eventBus: eventBus, helpers: helpers}
}

func (w *RoundReminderWorker) Work(ctx context.Context, job *river.Job[RoundReminderJob]) error {
	w.logger.InfoContext(ctx, "Round reminder job firing",
		attr.RoundID("round_id", job.Args.RoundID),
		attr.Int64("job_id", job.ID),
	)

	payload := roundevents.RoundReminderDuePayloadV1{
		RoundID: job.Args.RoundID,
		TeeTime: job.Args.TeeTime,
	}
	msg, err := w.helpers.CreateNewMessage(payload, roundevents.RoundReminderDueV1)
	if err != nil {
		return fmt.Errorf("failed to build round reminder message: %w", err)
	}

	if err := w.eventBus.Publish(roundevents.RoundReminderDueV1, msg); err != nil {
		return fmt.Errorf("failed to publish round reminder event: %w", err)
	}
	return nil
}
