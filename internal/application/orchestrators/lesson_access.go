package orchestrators

import (
	"context"

	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
)

// LessonLookupStore defines the lesson read shared by lesson-scoped operations.
type LessonLookupStore interface {
	GetByID(ctx context.Context, id string) (lesson.Lesson, error)
}

// loadOwnedLesson returns the lesson if teacherID may act on its course.
// PRE: lessonID may be empty
// POST: Returns the lesson or an ErrNotFound/ErrInvalidArgument error
func loadOwnedLesson(ctx context.Context, lessons LessonLookupStore, courses CourseLookupStore, lessonID, teacherID string) (lesson.Lesson, error) {
	if lessonID == "" {
		return lesson.Lesson{}, errs.Invalid("lesson_id is required")
	}
	l, err := lessons.GetByID(ctx, lessonID)
	if err != nil {
		return lesson.Lesson{}, err
	}
	if teacherID == "" {
		return l, nil
	}
	if _, err := loadOwnedCourse(ctx, courses, l.CourseID, teacherID); err != nil {
		if errs.Kind(err) == errs.ErrNotFound {
			return lesson.Lesson{}, errs.NotFound("lesson %s", lessonID)
		}
		return lesson.Lesson{}, err
	}
	return l, nil
}
