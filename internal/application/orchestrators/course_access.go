package orchestrators

import (
	"context"
	"time"

	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/errs"

	"github.com/google/uuid"
)

// CourseLookupStore defines the course read needed by course-scoped operations.
type CourseLookupStore interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
}

// loadOwnedCourse returns the course if teacherID may act on it.
// A course owned by someone else is reported as not found so ids do not leak.
// PRE: courseID may be empty
// POST: Returns the course or an ErrNotFound/ErrInvalidArgument error
func loadOwnedCourse(ctx context.Context, store CourseLookupStore, courseID, teacherID string) (course.Course, error) {
	if courseID == "" {
		return course.Course{}, errs.Invalid("course_id is required")
	}
	c, err := store.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, err
	}
	if !c.OwnedBy(teacherID) {
		return course.Course{}, errs.NotFound("course %s", courseID)
	}
	return c, nil
}

func idGenerator(f func() string) func() string {
	if f != nil {
		return f
	}
	return func() string { return uuid.New().String() }
}

func clock(f func() time.Time) func() time.Time {
	if f != nil {
		return f
	}
	return time.Now
}
