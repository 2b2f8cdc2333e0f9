package courseservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	courseevents "github.com/Black-And-White-Club/fairway-bot/app/modules/course/domain/events"
	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
)

func newTestService(repo coursedb.Repository) *CourseService {
	return NewCourseService(
		repo,
		slog.New(slog.DiscardHandler),
		metrics.NoOp{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func validLayout(holes int) courseevents.CourseCreateRequestedPayloadV1 {
	faker := gofakeit.New(7)

	payload := courseevents.CourseCreateRequestedPayloadV1{
		CourseID: "river-bend",
		Name:     faker.Company() + " Golf Club",
		City:     faker.City(),
		State:    faker.StateAbr(),
		Tees: []sharedtypes.Tee{
			{Name: "blue", Rating: 71.3, Slope: 128, Par: holes * 4, Yards: holes * 360},
			{Name: "white", Rating: 69.1, Slope: 121, Par: holes * 4, Yards: holes * 330},
		},
	}
	for i := 1; i <= holes; i++ {
		payload.Holes = append(payload.Holes, sharedtypes.Hole{
			Number:       sharedtypes.HoleNumber(i),
			Par:          4,
			HandicapRank: i,
			Yardage:      340 + i,
		})
	}
	return payload
}

func TestCreateCourse(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*courseevents.CourseCreateRequestedPayloadV1)
		wantReason string
	}{
		{
			name:   "stores a valid eighteen hole layout",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {},
		},
		{
			name: "stores a valid nine hole layout",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Holes = p.Holes[:9]
			},
		},
		{
			name: "rejects a missing course id",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.CourseID = ""
			},
			wantReason: "missing course id",
		},
		{
			name: "rejects a twelve hole layout",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Holes = p.Holes[:12]
			},
			wantReason: "9 or 18 holes",
		},
		{
			name: "rejects a duplicate hole number",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Holes[3].Number = p.Holes[2].Number
			},
			wantReason: "duplicate hole number",
		},
		{
			name: "rejects a duplicate handicap rank",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Holes[5].HandicapRank = p.Holes[4].HandicapRank
			},
			wantReason: "duplicate handicap rank",
		},
		{
			name: "rejects an implausible par",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Holes[0].Par = 9
			},
			wantReason: "implausible par",
		},
		{
			name: "rejects a layout with no tees",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Tees = nil
			},
			wantReason: "at least one tee",
		},
		{
			name: "rejects a tee with an out of range slope",
			mutate: func(p *courseevents.CourseCreateRequestedPayloadV1) {
				p.Tees[0].Slope = 200
			},
			wantReason: "slope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeCourseRepo()
			svc := newTestService(repo)

			payload := validLayout(18)
			tt.mutate(&payload)

			result, err := svc.CreateCourse(context.Background(), payload)
			assert.NoError(t, err)

			if tt.wantReason != "" {
				assert.True(t, result.IsFailure())
				assert.Contains(t, result.Failure.Reason, tt.wantReason)
				assert.Nil(t, repo.LastCreated, "rejected layout must not be stored")
				return
			}

			assert.True(t, result.IsSuccess())
			assert.Equal(t, payload.CourseID, result.Success.CourseID)
			if assert.NotNil(t, repo.LastCreated) {
				assert.Equal(t, payload.Name, repo.LastCreated.Name)
				assert.Len(t, repo.LastCreated.Holes, len(payload.Holes))
			}
		})
	}
}

func TestCreateCourseRepoFailure(t *testing.T) {
	repo := NewFakeCourseRepo()
	repo.CreateCourseFunc = func(ctx context.Context, course *coursedb.Course) error {
		return errors.New("connection refused")
	}
	svc := newTestService(repo)

	_, err := svc.CreateCourse(context.Background(), validLayout(18))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestListCourses(t *testing.T) {
	faker := gofakeit.New(11)

	stored := make([]coursedb.Course, 3)
	for i := range stored {
		name := faker.Company() + " Golf Club"
		stored[i] = coursedb.Course{
			ID:   strings.ToLower(strings.ReplaceAll(name, " ", "-")) + fmt.Sprint(i),
			Name: name,
		}
	}

	repo := NewFakeCourseRepo()
	repo.ListCoursesFunc = func(ctx context.Context) ([]coursedb.Course, error) {
		return stored, nil
	}
	svc := newTestService(repo)

	courses, err := svc.ListCourses(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, stored, courses)
}
