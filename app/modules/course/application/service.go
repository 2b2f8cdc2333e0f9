// Package courseservice validates and stores course layouts.
package courseservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	courseevents "github.com/Black-And-White-Club/fairway-bot/app/modules/course/domain/events"
	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// CourseService implements Service.
type CourseService struct {
	repo    coursedb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

var _ Service = (*CourseService)(nil)

// NewCourseService creates a new CourseService.
func NewCourseService(repo coursedb.Repository, logger *slog.Logger, m metrics.OperationMetrics, tracer trace.Tracer) *CourseService {
	return &CourseService{
		repo:    repo,
		logger:  logger,
		metrics: m,
		tracer:  tracer,
	}
}

// CreateCourse validates the layout and upserts it.
func (s *CourseService) CreateCourse(ctx context.Context, payload courseevents.CourseCreateRequestedPayloadV1) (CourseOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, "CreateCourse", trace.WithAttributes(
		attribute.String("course_id", payload.CourseID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "CreateCourse")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "CreateCourse", time.Since(start))
	}()

	if reason := validateLayout(payload); reason != "" {
		s.logger.WarnContext(ctx, "Rejected course layout",
			attr.String("course_id", payload.CourseID),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, "CreateCourse")
		return results.FailureResult[courseevents.CourseCreatedPayloadV1](courseevents.CourseCreateFailedPayloadV1{
			CourseID: payload.CourseID,
			Reason:   reason,
		}), nil
	}

	course := &coursedb.Course{
		ID:    payload.CourseID,
		Name:  payload.Name,
		City:  payload.City,
		State: payload.State,
		Holes: payload.Holes,
		Tees:  payload.Tees,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		s.metrics.RecordOperationFailure(ctx, "CreateCourse")
		span.RecordError(err)
		return CourseOperationResult{}, fmt.Errorf("CreateCourse: %w", err)
	}

	s.logger.InfoContext(ctx, "Course stored",
		attr.String("course_id", course.ID),
		attr.String("name", course.Name),
	)
	s.metrics.RecordOperationSuccess(ctx, "CreateCourse")
	return results.SuccessResult[courseevents.CourseCreatedPayloadV1, courseevents.CourseCreateFailedPayloadV1](courseevents.CourseCreatedPayloadV1{
		CourseID: course.ID,
		Name:     course.Name,
	}), nil
}

// GetCourse fetches one course layout.
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*coursedb.Course, error) {
	return s.repo.GetCourse(ctx, courseID)
}

// ListCourses fetches every course layout.
func (s *CourseService) ListCourses(ctx context.Context) ([]coursedb.Course, error) {
	return s.repo.ListCourses(ctx)
}

// validateLayout returns a rejection reason, or empty when the layout holds.
func validateLayout(payload courseevents.CourseCreateRequestedPayloadV1) string {
	if payload.CourseID == "" {
		return "missing course id"
	}
	if payload.Name == "" {
		return "missing course name"
	}
	if len(payload.Holes) != 9 && len(payload.Holes) != 18 {
		return fmt.Sprintf("course must have 9 or 18 holes, got %d", len(payload.Holes))
	}
	if len(payload.Tees) == 0 {
		return "course needs at least one tee"
	}

	seenHoles := make(map[sharedtypes.HoleNumber]struct{}, len(payload.Holes))
	seenRanks := make(map[int]struct{}, len(payload.Holes))
	for _, h := range payload.Holes {
		if h.Number < 1 || h.Number > 18 {
			return fmt.Sprintf("hole number %d out of range", h.Number)
		}
		if h.Par < 3 || h.Par > 6 {
			return fmt.Sprintf("hole %d has implausible par %d", h.Number, h.Par)
		}
		if _, dup := seenHoles[h.Number]; dup {
			return fmt.Sprintf("duplicate hole number %d", h.Number)
		}
		seenHoles[h.Number] = struct{}{}
		if h.HandicapRank < 1 || h.HandicapRank > 18 {
			return fmt.Sprintf("hole %d has handicap rank %d out of range", h.Number, h.HandicapRank)
		}
		if _, dup := seenRanks[h.HandicapRank]; dup {
			return fmt.Sprintf("duplicate handicap rank %d", h.HandicapRank)
		}
		seenRanks[h.HandicapRank] = struct{}{}
	}

	for _, t := range payload.Tees {
		if t.Name == "" {
			return "tee with empty name"
		}
		if t.Slope < 55 || t.Slope > 155 {
			return fmt.Sprintf("tee %s has slope %d outside 55-155", t.Name, t.Slope)
		}
		if t.Rating <= 0 {
			return fmt.Sprintf("tee %s has non-positive rating", t.Name)
		}
	}
	return ""
}
