package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/lesson"
)

// SaveLessonInput carries everything the lesson page submits at once.
type SaveLessonInput struct {
	TeacherID  string
	LessonID   string
	Plan       lesson.Plan
	Attendance []attendance.Entry
}

// SaveLessonResult carries the outcome of a combined save.
type SaveLessonResult struct {
	Lesson     lesson.Lesson
	Next       *lesson.Lesson
	Attendance []attendance.Record
}

// SaveLessonDeps holds dependencies for SaveLesson.
type SaveLessonDeps struct {
	CourseStore      CourseLookupStore
	LessonStore      LessonStoreForPlan
	ParticipantStore ParticipantLookupStore
	AttendanceStore  AttendanceStoreForBatch
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteSaveLesson saves a lesson's plan (with carry-over) and its attendance list.
// PRE: The lesson exists and its course belongs to TeacherID
// POST: On an invalid attendance list nothing is written. Otherwise the plan is saved and
// carried over first, then all attendance entries are upserted in one transaction
func ExecuteSaveLesson(ctx context.Context, input SaveLessonInput, deps SaveLessonDeps) (SaveLessonResult, error) {
	l, err := loadOwnedLesson(ctx, deps.LessonStore, deps.CourseStore, input.LessonID, input.TeacherID)
	if err != nil {
		return SaveLessonResult{}, err
	}
	records, err := prepareAttendance(ctx, l, input.Attendance, deps.ParticipantStore, idGenerator(deps.GenerateID), clock(deps.Now)())
	if err != nil {
		return SaveLessonResult{}, err
	}

	saved, err := ExecuteSaveLessonPlan(ctx, SaveLessonPlanInput{
		LessonID: l.ID,
		Plan:     input.Plan,
	}, SaveLessonPlanDeps{
		CourseStore: deps.CourseStore,
		LessonStore: deps.LessonStore,
	})
	if err != nil {
		return SaveLessonResult{}, err
	}
	result := SaveLessonResult{Lesson: saved.Lesson, Next: saved.Next, Attendance: []attendance.Record{}}

	if len(records) > 0 {
		stored, err := deps.AttendanceStore.UpsertBatch(ctx, records)
		if err != nil {
			return result, err
		}
		result.Attendance = stored
	}

	slog.Info("lesson_event", "event", "lesson_saved", "lesson_id", l.ID, "attendance_entries", len(records))
	return result, nil
}
