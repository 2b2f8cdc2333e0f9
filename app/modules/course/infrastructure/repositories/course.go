// Package coursedb stores course layouts in Postgres via bun.
package coursedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrCourseNotFound marks a lookup for an unknown course ID.
var ErrCourseNotFound = errors.New("course not found")

// CourseDBImpl is the bun-backed Repository.
type CourseDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*CourseDBImpl)(nil)

func (db *CourseDBImpl) GetCourse(ctx context.Context, id string) (*Course, error) {
	var course Course
	err := db.DB.NewSelect().
		Model(&course).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch course %s: %w", id, err)
	}
	return &course, nil
}

func (db *CourseDBImpl) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := db.DB.NewSelect().
		Model(&courses).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (db *CourseDBImpl) CreateCourse(ctx context.Context, course *Course) error {
	_, err := db.DB.NewInsert().
		Model(course).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name, city = EXCLUDED.city, state = EXCLUDED.state, holes = EXCLUDED.holes, tees = EXCLUDED.tees").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert course %s: %w", course.ID, err)
	}
	return nil
}
