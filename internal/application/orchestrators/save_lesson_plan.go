package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/lesson"
)

// LessonStoreForPlan defines the store interface needed by SaveLessonPlan.
type LessonStoreForPlan interface {
	LessonLookupStore
	UpdatePlan(ctx context.Context, id string, plan lesson.Plan) error
	NextAfter(ctx context.Context, courseID string, date time.Time) (lesson.Lesson, bool, error)
	UpdatePlanToday(ctx context.Context, id string, planToday string) error
}

// SaveLessonPlanInput carries input for the save-plan orchestrator.
// Text fields are stored verbatim, whitespace included.
type SaveLessonPlanInput struct {
	TeacherID string
	LessonID  string
	Plan      lesson.Plan
}

// SaveLessonPlanResult carries the saved lesson and where its planNext went.
type SaveLessonPlanResult struct {
	Lesson lesson.Lesson
	Next   *lesson.Lesson // nil when the lesson is the course's last
}

// SaveLessonPlanDeps holds dependencies for SaveLessonPlan.
type SaveLessonPlanDeps struct {
	CourseStore CourseLookupStore
	LessonStore LessonStoreForPlan
}

// ExecuteSaveLessonPlan overwrites a lesson's plan fields and carries planNext over
// into the planToday of the course's chronologically next lesson.
// PRE: The lesson exists and its course belongs to TeacherID
// POST: The lesson holds the new plan; the next lesson (smallest later date, ties by id)
// has planToday == Plan.PlanNext; no other lesson changed
// INVARIANT: Propagation is one step only; the lesson after next is never touched
func ExecuteSaveLessonPlan(ctx context.Context, input SaveLessonPlanInput, deps SaveLessonPlanDeps) (SaveLessonPlanResult, error) {
	l, err := loadOwnedLesson(ctx, deps.LessonStore, deps.CourseStore, input.LessonID, input.TeacherID)
	if err != nil {
		return SaveLessonPlanResult{}, err
	}

	l.ApplyPlan(input.Plan)
	if err := deps.LessonStore.UpdatePlan(ctx, l.ID, input.Plan); err != nil {
		return SaveLessonPlanResult{}, err
	}
	result := SaveLessonPlanResult{Lesson: l}

	next, ok, err := deps.LessonStore.NextAfter(ctx, l.CourseID, l.Date)
	if err != nil {
		return result, fmt.Errorf("find lesson after %s: %w", dates.ISO(l.Date), err)
	}
	if !ok {
		slog.Info("lesson_event", "event", "plan_saved", "lesson_id", l.ID, "carried_to", "")
		return result, nil
	}

	l.CarryOverTo(&next)
	if err := deps.LessonStore.UpdatePlanToday(ctx, next.ID, next.PlanToday); err != nil {
		return result, fmt.Errorf("carry plan over to lesson %s: %w", next.ID, err)
	}
	result.Next = &next

	slog.Info("lesson_event", "event", "plan_saved", "lesson_id", l.ID, "carried_to", next.ID, "next_date", dates.ISO(next.Date))
	return result, nil
}
