package projections

import (
	"context"
	"time"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/participant"
)

// CourseStore interface for course queries.
type CourseStore interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
	ListByTeacherID(ctx context.Context, teacherID string) ([]course.Course, error)
}

// LessonStore interface for lesson queries.
type LessonStore interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
	ListByCourseID(ctx context.Context, courseID string) ([]lesson.Lesson, error)
	ListByCourseAndDateRange(ctx context.Context, courseID string, from, to time.Time) ([]lesson.Lesson, error)
	ListByDate(ctx context.Context, courseIDs []string, date time.Time) ([]lesson.Lesson, error)
}

// ParticipantStore interface for participant queries.
type ParticipantStore interface {
	ListByCourseID(ctx context.Context, courseID string) ([]participant.Participant, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	ListByLessonID(ctx context.Context, lessonID string) ([]attendance.Record, error)
	ListByCourseID(ctx context.Context, courseID string) ([]attendance.Record, error)
}

// courseGetter is the slice of CourseStore that ownership checks need.
type courseGetter interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
}

// ownedCourse loads a course visible to teacherID. A course owned by someone
// else is reported as not found. An empty teacherID sees every course.
func ownedCourse(ctx context.Context, store courseGetter, courseID, teacherID string) (course.Course, error) {
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

type lessonGetter interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
}

// ownedLesson loads a lesson together with its course.
func ownedLesson(ctx context.Context, lessons lessonGetter, courses courseGetter, lessonID, teacherID string) (lesson.Lesson, course.Course, error) {
	if lessonID == "" {
		return lesson.Lesson{}, course.Course{}, errs.Invalid("lesson_id is required")
	}
	l, err := lessons.GetByID(ctx, lessonID)
	if err != nil {
		return lesson.Lesson{}, course.Course{}, err
	}
	c, err := ownedCourse(ctx, courses, l.CourseID, teacherID)
	if err != nil {
		if errs.Kind(err) == errs.ErrNotFound {
			return lesson.Lesson{}, course.Course{}, errs.NotFound("lesson %s", lessonID)
		}
		return lesson.Lesson{}, course.Course{}, err
	}
	return l, c, nil
}
