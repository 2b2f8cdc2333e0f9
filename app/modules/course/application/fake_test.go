package courseservice

import (
	"context"

	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
)

// FakeCourseRepo is a programmable coursedb.Repository.
type FakeCourseRepo struct {
	GetCourseFunc    func(ctx context.Context, id string) (*coursedb.Course, error)
	ListCoursesFunc  func(ctx context.Context) ([]coursedb.Course, error)
	CreateCourseFunc func(ctx context.Context, course *coursedb.Course) error

	LastCreated *coursedb.Course
}

func NewFakeCourseRepo() *FakeCourseRepo {
	return &FakeCourseRepo{}
}

func (f *FakeCourseRepo) GetCourse(ctx context.Context, id string) (*coursedb.Course, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, id)
	}
	return nil, coursedb.ErrCourseNotFound
}

func (f *FakeCourseRepo) ListCourses(ctx context.Context) ([]coursedb.Course, error) {
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeCourseRepo) CreateCourse(ctx context.Context, course *coursedb.Course) error {
	f.LastCreated = course
	if f.CreateCourseFunc != nil {
		return f.CreateCourseFunc(ctx, course)
	}
	return nil
}
