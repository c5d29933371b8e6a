package orchestrators

import (
	"context"
	"log/slog"

	"lessonbook/internal/domain/dates"
)

// LessonStoreForDelete defines the store interface needed by DeleteLesson.
type LessonStoreForDelete interface {
	LessonLookupStore
	Delete(ctx context.Context, id string) error
}

// DeleteLessonInput carries input for the delete-lesson orchestrator.
type DeleteLessonInput struct {
	TeacherID string
	LessonID  string
}

// DeleteLessonDeps holds dependencies for DeleteLesson.
type DeleteLessonDeps struct {
	CourseStore CourseLookupStore
	LessonStore LessonStoreForDelete
}

// ExecuteDeleteLesson removes a lesson and its attendance records.
// PRE: The lesson exists and its course belongs to TeacherID
// POST: Lesson and attendance are gone; neighbouring lessons keep their plans
func ExecuteDeleteLesson(ctx context.Context, input DeleteLessonInput, deps DeleteLessonDeps) error {
	l, err := loadOwnedLesson(ctx, deps.LessonStore, deps.CourseStore, input.LessonID, input.TeacherID)
	if err != nil {
		return err
	}
	if err := deps.LessonStore.Delete(ctx, l.ID); err != nil {
		return err
	}
	slog.Info("lesson_event", "event", "lesson_deleted", "lesson_id", l.ID, "course_id", l.CourseID, "date", dates.ISO(l.Date))
	return nil
}
