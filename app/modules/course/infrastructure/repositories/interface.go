package coursedb

import "context"

// Repository is the course storage surface.
type Repository interface {
	GetCourse(ctx context.Context, id string) (*Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	CreateCourse(ctx context.Context, course *Course) error
}
