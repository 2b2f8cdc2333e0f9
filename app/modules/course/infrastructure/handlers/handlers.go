// Package coursehandlers maps course topics onto service operations.
package coursehandlers

import (
	"context"
	"fmt"
	"log/slog"

	courseservice "github.com/Black-And-White-Club/fairway-bot/app/modules/course/application"
	courseevents "github.com/Black-And-White-Club/fairway-bot/app/modules/course/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
)

// Handlers is the course module's handler surface.
type Handlers interface {
	HandleCourseCreateRequest(ctx context.Context, payload *courseevents.CourseCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// CourseHandlers handles course-related events.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
}

var _ Handlers = (*CourseHandlers)(nil)

// NewCourseHandlers creates a new CourseHandlers.
func NewCourseHandlers(service courseservice.Service, logger *slog.Logger) *CourseHandlers {
	return &CourseHandlers{service: service, logger: logger}
}

// HandleCourseCreateRequest stores a course layout and reports the outcome.
func (h *CourseHandlers) HandleCourseCreateRequest(ctx context.Context, payload *courseevents.CourseCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received course create request",
		attr.String("course_id", payload.CourseID),
		attr.String("name", payload.Name),
	)

	result, err := h.service.CreateCourse(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle course create request: %w", err)
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: courseevents.CourseCreateFailedV1, Payload: result.Failure}}, nil
	}
	return []handlerwrapper.Result{{Topic: courseevents.CourseCreatedV1, Payload: result.Success}}, nil
}
