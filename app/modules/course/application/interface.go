package courseservice

import (
	"context"

	courseevents "github.com/Black-And-White-Club/fairway-bot/app/modules/course/domain/events"
	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// CourseOperationResult is the envelope course operations return.
type CourseOperationResult = results.OperationResult[courseevents.CourseCreatedPayloadV1, courseevents.CourseCreateFailedPayloadV1]

// Service is the course module's application surface.
type Service interface {
	CreateCourse(ctx context.Context, payload courseevents.CourseCreateRequestedPayloadV1) (CourseOperationResult, error)
	GetCourse(ctx context.Context, courseID string) (*coursedb.Course, error)
	ListCourses(ctx context.Context) ([]coursedb.Course, error)
}
