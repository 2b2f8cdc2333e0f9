package roundservice

import (
	"context"
	"time"

	roundqueue "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/queue"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// FakeRoundRepository is a programmable stub for the rounddb.Repository
// interface.
type FakeRoundRepository struct {
	trace []string

	CreateRoundFunc         func(ctx context.Context, round *rounddb.Round) error
	GetRoundFunc            func(ctx context.Context, id sharedtypes.RoundID) (*rounddb.Round, error)
	UpdateStatusFunc        func(ctx context.Context, id sharedtypes.RoundID, status string) error
	UpdateStateFunc         func(ctx context.Context, id sharedtypes.RoundID, state *scorecard.RoundState) error
	ListScheduledBeforeFunc func(ctx context.Context, cutoff time.Time) ([]rounddb.Round, error)
	LastCreated             *rounddb.Round
	LastState               *scorecard.RoundState
	LastStatus              string
}

func NewFakeRoundRepository() *FakeRoundRepository {
	return &FakeRoundRepository{trace: []string{}}
}

func (f *FakeRoundRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepository) CreateRound(ctx context.Context, round *rounddb.Round) error {
	f.record("CreateRound")
	f.LastCreated = round
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, round)
	}
	return nil
}

func (f *FakeRoundRepository) GetRound(ctx context.Context, id sharedtypes.RoundID) (*rounddb.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, id)
	}
	return nil, rounddb.ErrRoundNotFound
}

func (f *FakeRoundRepository) UpdateStatus(ctx context.Context, id sharedtypes.RoundID, status string) error {
	f.record("UpdateStatus")
	f.LastStatus = status
	if f.UpdateStatusFunc != nil {
		return f.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (f *FakeRoundRepository) UpdateState(ctx context.Context, id sharedtypes.RoundID, state *scorecard.RoundState) error {
	f.record("UpdateState")
	f.LastState = state
	if f.UpdateStateFunc != nil {
		return f.UpdateStateFunc(ctx, id, state)
	}
	return nil
}

func (f *FakeRoundRepository) ListScheduledBefore(ctx context.Context, cutoff time.Time) ([]rounddb.Round, error) {
	f.record("ListScheduledBefore")
	if f.ListScheduledBeforeFunc != nil {
		return f.ListScheduledBeforeFunc(ctx, cutoff)
	}
	return nil, nil
}

var _ rounddb.Repository = (*FakeRoundRepository)(nil)

// FakeCourseReader serves a single in-memory course.
type FakeCourseReader struct {
	GetCourseFunc func(ctx context.Context, courseID string) (*Course, error)
}

func (f *FakeCourseReader) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, courseID)
	}
	return nil, context.Canceled
}

var _ CourseReader = (*FakeCourseReader)(nil)

// FakeQueue records scheduling calls without a database.
type FakeQueue struct {
	trace []string

	ScheduleRoundStartFunc    func(ctx context.Context, roundID sharedtypes.RoundID, startTime time.Time) error
	ScheduleRoundReminderFunc func(ctx context.Context, roundID sharedtypes.RoundID, reminderTime, teeTime time.Time) error
	GetScheduledJobsFunc      func(ctx context.Context, roundID sharedtypes.RoundID) ([]roundqueue.JobInfo, error)
	LastStartTime             time.Time
	LastReminderTime          time.Time
}

func NewFakeQueue() *FakeQueue {
	return &FakeQueue{trace: []string{}}
}

func (f *FakeQueue) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeQueue) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeQueue) ScheduleRoundStart(ctx context.Context, roundID sharedtypes.RoundID, startTime time.Time) error {
	f.record("ScheduleRoundStart")
	f.LastStartTime = startTime
	if f.ScheduleRoundStartFunc != nil {
		return f.ScheduleRoundStartFunc(ctx, roundID, startTime)
	}
	return nil
}

func (f *FakeQueue) ScheduleRoundReminder(ctx context.Context, roundID sharedtypes.RoundID, reminderTime, teeTime time.Time) error {
	f.record("ScheduleRoundReminder")
	f.LastReminderTime = reminderTime
	if f.ScheduleRoundReminderFunc != nil {
		return f.ScheduleRoundReminderFunc(ctx, roundID, reminderTime, teeTime)
	}
	return nil
}

func (f *FakeQueue) CancelRoundJobs(ctx context.Context, roundID sharedtypes.RoundID) error {
	f.record("CancelRoundJobs")
	return nil
}

func (f *FakeQueue) GetScheduledJobs(ctx context.Context, roundID sharedtypes.RoundID) ([]roundqueue.JobInfo, error) {
	f.record("GetScheduledJobs")
	if f.GetScheduledJobsFunc != nil {
		return f.GetScheduledJobsFunc(ctx, roundID)
	}
	return nil, nil
}

func (f *FakeQueue) Start(ctx context.Context) error { return nil }

func (f *FakeQueue) Stop(ctx context.Context) error { return nil }

var _ roundqueue.QueueService = (*FakeQueue)(nil)
