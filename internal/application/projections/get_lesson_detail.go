package projections

import (
	"context"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/participant"
)

// GetLessonDetailQuery carries query parameters.
type GetLessonDetailQuery struct {
	TeacherID string
	LessonID  string
}

// GetLessonDetailDeps holds dependencies for GetLessonDetail.
type GetLessonDetailDeps struct {
	CourseStore      CourseStore
	LessonStore      LessonStore
	ParticipantStore ParticipantStore
	AttendanceStore  AttendanceStore
}

// LessonDetail is everything the lesson page shows: the lesson, its course
// roster and the attendance recorded so far.
type LessonDetail struct {
	Lesson       lesson.Lesson
	Course       course.Course
	Participants []participant.Participant
	Attendance   map[string]attendance.State
}

// QueryGetLessonDetail loads a lesson with roster and attendance.
func QueryGetLessonDetail(ctx context.Context, query GetLessonDetailQuery, deps GetLessonDetailDeps) (LessonDetail, error) {
	l, c, err := ownedLesson(ctx, deps.LessonStore, deps.CourseStore, query.LessonID, query.TeacherID)
	if err != nil {
		return LessonDetail{}, err
	}
	participants, err := deps.ParticipantStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return LessonDetail{}, err
	}
	if participants == nil {
		participants = []participant.Participant{}
	}
	att, err := QueryAttendanceForLesson(ctx, AttendanceForLessonQuery{LessonID: l.ID}, AttendanceForLessonDeps{
		CourseStore:     deps.CourseStore,
		LessonStore:     deps.LessonStore,
		AttendanceStore: deps.AttendanceStore,
	})
	if err != nil {
		return LessonDetail{}, err
	}
	return LessonDetail{Lesson: l, Course: c, Participants: participants, Attendance: att}, nil
}
