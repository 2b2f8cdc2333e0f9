package roundservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

func testCourse() *Course {
	holes := make([]sharedtypes.Hole, 18)
	for i := range holes {
		holes[i] = sharedtypes.Hole{
			Number:       sharedtypes.HoleNumber(i + 1),
			Par:          4,
			HandicapRank: i + 1,
			Yardage:      380,
		}
	}
	return &Course{
		ID:    "course-1",
		Name:  "Stone Creek",
		Holes: holes,
		Tees: []sharedtypes.Tee{
			{Name: "blue", Rating: 72.0, Slope: 113, Par: 72, Yards: 6600},
		},
	}
}

func newTestService(repo rounddb.Repository, courses CourseReader, queue *FakeQueue, clock utils.Clock) *RoundService {
	return NewRoundService(
		repo,
		courses,
		queue,
		clock,
		slog.New(slog.DiscardHandler),
		metrics.NoOp{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func idx(v float64) *sharedtypes.HandicapIndex {
	h := sharedtypes.HandicapIndex(v)
	return &h
}

func TestCreateRound(t *testing.T) {
	ctx := context.Background()

	// Saturday morning, well before any parsed tee time.
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatal(err)
	}
	clock := utils.FixedClock{Instant: time.Date(2026, 6, 6, 6, 0, 0, 0, chicago)}

	basePayload := func() roundevents.RoundCreateRequestedPayloadV1 {
		return roundevents.RoundCreateRequestedPayloadV1{
			CourseID:  "course-1",
			Format:    sharedtypes.FormatFull18,
			TeeTime:   "today at 7:30am",
			Timezone:  "CST",
			CreatedBy: "amy",
			Golfers: []roundevents.RoundGolferInput{
				{GolferID: "amy", Name: "Amy", HandicapIndex: idx(10.4), TeeName: "blue"},
				{GolferID: "ben", Name: "Ben", HandicapIndex: idx(4.0), TeeName: "blue"},
			},
			Games: scorecard.GameConfig{
				MatchPlay: &scorecard.MatchPlayConfig{GolferA: "amy", GolferB: "ben"},
			},
		}
	}

	tests := []struct {
		name           string
		mutate         func(*roundevents.RoundCreateRequestedPayloadV1)
		setupRepo      func(*FakeRoundRepository)
		setupCourses   func(*FakeCourseReader)
		expectInfraErr bool
		verify         func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue)
	}{
		{
			name: "success stores round and schedules jobs",
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if infraErr != nil {
					t.Fatalf("unexpected infra error: %v", infraErr)
				}
				if res.Success == nil {
					t.Fatalf("expected success, got failure %+v", res.Failure)
				}

				wantTee := time.Date(2026, 6, 6, 7, 30, 0, 0, chicago).UTC()
				if !res.Success.TeeTime.Equal(wantTee) {
					t.Errorf("tee time = %v, want %v", res.Success.TeeTime, wantTee)
				}

				amy, ok := res.Success.State.Golfer("amy")
				if !ok {
					t.Fatal("amy missing from state roster")
				}
				if amy.CourseHandicap == nil || *amy.CourseHandicap != 10 {
					t.Errorf("amy course handicap = %v, want 10", amy.CourseHandicap)
				}
				ben, _ := res.Success.State.Golfer("ben")
				if ben.CourseHandicap == nil || *ben.CourseHandicap != 4 {
					t.Errorf("ben course handicap = %v, want 4", ben.CourseHandicap)
				}

				if repo.LastCreated == nil || repo.LastCreated.Status != rounddb.StatusScheduled {
					t.Errorf("stored round not scheduled: %+v", repo.LastCreated)
				}

				wantTrace := []string{"ScheduleRoundStart", "ScheduleRoundReminder"}
				got := queue.Trace()
				if len(got) != len(wantTrace) || got[0] != wantTrace[0] || got[1] != wantTrace[1] {
					t.Errorf("queue trace = %v, want %v", got, wantTrace)
				}
				if want := wantTee.Add(-time.Hour); !queue.LastReminderTime.Equal(want) {
					t.Errorf("reminder time = %v, want %v", queue.LastReminderTime, want)
				}
			},
		},
		{
			name: "rejects unknown format before touching storage",
			mutate: func(p *roundevents.RoundCreateRequestedPayloadV1) {
				p.Format = "full36"
			},
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if res.Failure == nil || !strings.Contains(res.Failure.Reason, "full36") {
					t.Errorf("expected format rejection, got %+v", res)
				}
				if len(repo.Trace()) > 0 {
					t.Error("repo should not be called for an invalid format")
				}
			},
		},
		{
			name: "rejects tee time in the past",
			mutate: func(p *roundevents.RoundCreateRequestedPayloadV1) {
				p.TeeTime = "yesterday at 7:30am"
			},
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if res.Failure == nil || !strings.Contains(res.Failure.Reason, "unusable tee time") {
					t.Errorf("expected tee time rejection, got %+v", res)
				}
			},
		},
		{
			name: "rejects unknown tee",
			mutate: func(p *roundevents.RoundCreateRequestedPayloadV1) {
				p.Golfers[0].TeeName = "gold"
			},
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if res.Failure == nil || !strings.Contains(res.Failure.Reason, `unknown tee "gold"`) {
					t.Errorf("expected tee rejection, got %+v", res)
				}
			},
		},
		{
			name: "rejects missing course",
			setupCourses: func(f *FakeCourseReader) {
				f.GetCourseFunc = func(ctx context.Context, courseID string) (*Course, error) {
					return nil, errors.New("no such course")
				}
			},
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if res.Failure == nil || !strings.Contains(res.Failure.Reason, "not found") {
					t.Errorf("expected course rejection, got %+v", res)
				}
			},
		},
		{
			name: "rejects bad game config from the aggregate",
			mutate: func(p *roundevents.RoundCreateRequestedPayloadV1) {
				p.Games.MatchPlay = &scorecard.MatchPlayConfig{GolferA: "amy", GolferB: "amy"}
			},
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if res.Failure == nil || !strings.Contains(res.Failure.Reason, "distinct") {
					t.Errorf("expected game config rejection, got %+v", res)
				}
			},
		},
		{
			name: "database error surfaces as infra error",
			setupRepo: func(f *FakeRoundRepository) {
				f.CreateRoundFunc = func(ctx context.Context, round *rounddb.Round) error {
					return errors.New("db connection lost")
				}
			},
			expectInfraErr: true,
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if infraErr == nil || !strings.Contains(infraErr.Error(), "db connection lost") {
					t.Errorf("expected infra error, got %v", infraErr)
				}
				if len(queue.Trace()) > 0 {
					t.Error("nothing should be scheduled when the round is not stored")
				}
			},
		},
		{
			name: "scheduling failure does not fail the operation",
			verify: func(t *testing.T, res RoundOperationResult, infraErr error, repo *FakeRoundRepository, queue *FakeQueue) {
				if infraErr != nil {
					t.Fatalf("unexpected infra error: %v", infraErr)
				}
				if res.Success == nil {
					t.Fatal("expected success despite scheduling failure")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeRoundRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			courses := &FakeCourseReader{
				GetCourseFunc: func(ctx context.Context, courseID string) (*Course, error) {
					return testCourse(), nil
				},
			}
			if tt.setupCourses != nil {
				tt.setupCourses(courses)
			}

			queue := NewFakeQueue()
			if tt.name == "scheduling failure does not fail the operation" {
				queue.ScheduleRoundStartFunc = func(ctx context.Context, roundID sharedtypes.RoundID, startTime time.Time) error {
					return errors.New("river unavailable")
				}
			}

			svc := newTestService(repo, courses, queue, clock)

			payload := basePayload()
			if tt.mutate != nil {
				tt.mutate(&payload)
			}

			res, err := svc.CreateRound(ctx, payload)
			if tt.expectInfraErr && err == nil {
				t.Fatal("expected an infra error")
			}
			tt.verify(t, res, err, repo, queue)
		})
	}
}

func TestStartAndFinalizeRound(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRoundRepository()

	var gotStatus string
	repo.UpdateStatusFunc = func(ctx context.Context, id sharedtypes.RoundID, status string) error {
		gotStatus = status
		return nil
	}
	repo.GetRoundFunc = func(ctx context.Context, id sharedtypes.RoundID) (*rounddb.Round, error) {
		return &rounddb.Round{ID: id, Status: rounddb.StatusScheduled}, nil
	}

	svc := newTestService(repo, &FakeCourseReader{}, NewFakeQueue(), utils.RealClock{})

	if err := svc.StartRound(ctx, "r-1"); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if gotStatus != rounddb.StatusInProgress {
		t.Errorf("status after start = %q, want %q", gotStatus, rounddb.StatusInProgress)
	}

	if err := svc.FinalizeRound(ctx, "r-1"); err != nil {
		t.Fatalf("FinalizeRound: %v", err)
	}
	if gotStatus != rounddb.StatusFinalized {
		t.Errorf("status after finalize = %q, want %q", gotStatus, rounddb.StatusFinalized)
	}
}

func TestStartRoundSkipsNonScheduled(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRoundRepository()
	repo.GetRoundFunc = func(ctx context.Context, id sharedtypes.RoundID) (*rounddb.Round, error) {
		return &rounddb.Round{ID: id, Status: rounddb.StatusCancelled}, nil
	}

	svc := newTestService(repo, &FakeCourseReader{}, NewFakeQueue(), utils.RealClock{})

	if err := svc.StartRound(ctx, "r-1"); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	for _, step := range repo.Trace() {
		if step == "UpdateStatus" {
			t.Error("cancelled round must not be flipped to in progress")
		}
	}
}
