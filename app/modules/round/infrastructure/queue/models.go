package roundqueue

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// RoundStartJob fires at the scheduled tee time and publishes a start-due
// event for the round.
type RoundStartJob struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
}

// Kind returns the job type identifier for River.
func (RoundStartJob) Kind() string { return "round_start" }

// RoundReminderJob fires ahead of the tee time and publishes a reminder-due
// event for the round.
type RoundReminderJob struct {
	RoundID sharedtypes.RoundID `json:"round_id"`
	TeeTime time.Time           `json:"tee_time"`
}

// Kind returns the job type identifier for River.
func (RoundReminderJob) Kind() string { return "round_reminder" }

// JobInfo summarizes a scheduled job for debugging and monitoring.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
