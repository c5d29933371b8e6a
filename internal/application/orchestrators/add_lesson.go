package orchestrators

import (
	"context"
	"log/slog"

	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
)

// LessonStoreForAdd defines the store interface needed by AddLesson.
type LessonStoreForAdd interface {
	Create(ctx context.Context, l lesson.Lesson) error
}

// AddLessonInput carries input for the add-lesson orchestrator.
type AddLessonInput struct {
	TeacherID string
	CourseID  string
	Date      string // YYYY-MM-DD
	PlanToday string // optional initial plan
}

// AddLessonDeps holds dependencies for AddLesson.
type AddLessonDeps struct {
	CourseStore CourseLookupStore
	LessonStore LessonStoreForAdd
	GenerateID  func() string
}

// ExecuteAddLesson schedules a lesson on a date within the course.
// PRE: Date parses and lies within the course's start and end dates
// POST: Lesson persisted with empty outcome and planNext
// INVARIANT: At most one lesson per course and date; a second one is a Conflict
func ExecuteAddLesson(ctx context.Context, input AddLessonInput, deps AddLessonDeps) (lesson.Lesson, error) {
	date, err := dates.Parse(input.Date)
	if err != nil {
		return lesson.Lesson{}, err
	}
	c, err := loadOwnedCourse(ctx, deps.CourseStore, input.CourseID, input.TeacherID)
	if err != nil {
		return lesson.Lesson{}, err
	}
	if !c.Contains(date) {
		return lesson.Lesson{}, errs.Invalid("lesson date %s is outside the course (%s - %s)",
			dates.Display(date), dates.Display(c.StartDate), dates.Display(c.EndDate))
	}

	l := lesson.Lesson{
		ID:        idGenerator(deps.GenerateID)(),
		CourseID:  c.ID,
		Date:      date,
		PlanToday: input.PlanToday,
	}
	if err := l.Validate(); err != nil {
		return lesson.Lesson{}, err
	}
	if err := deps.LessonStore.Create(ctx, l); err != nil {
		return lesson.Lesson{}, err
	}

	slog.Info("lesson_event", "event", "lesson_added", "lesson_id", l.ID, "course_id", l.CourseID, "date", dates.ISO(l.Date))
	return l, nil
}
