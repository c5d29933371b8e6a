package projections

import (
	"context"

	"lessonbook/internal/domain/attendance"
)

// AttendanceForLessonQuery carries query parameters.
type AttendanceForLessonQuery struct {
	TeacherID string
	LessonID  string
}

// AttendanceForLessonDeps holds dependencies for AttendanceForLesson.
type AttendanceForLessonDeps struct {
	CourseStore     CourseStore
	LessonStore     LessonStore
	AttendanceStore AttendanceStore
}

// QueryAttendanceForLesson returns the recorded attendance of a lesson keyed by participant id.
// PRE: LessonID is non-empty
// POST: Map holds exactly the recorded entries; empty (non-nil) when none
// INVARIANT: Participants without a record are absent from the map, never defaulted
func QueryAttendanceForLesson(ctx context.Context, query AttendanceForLessonQuery, deps AttendanceForLessonDeps) (map[string]attendance.State, error) {
	l, _, err := ownedLesson(ctx, deps.LessonStore, deps.CourseStore, query.LessonID, query.TeacherID)
	if err != nil {
		return nil, err
	}
	records, err := deps.AttendanceStore.ListByLessonID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]attendance.State, len(records))
	for _, r := range records {
		out[r.ParticipantID] = r.State()
	}
	return out, nil
}
