package projections

import (
	"context"

	"lessonbook/internal/domain/attendance"
)

// AttendanceSummaryQuery carries query parameters.
type AttendanceSummaryQuery struct {
	TeacherID string
	CourseID  string
}

// AttendanceSummaryDeps holds dependencies for AttendanceSummary.
type AttendanceSummaryDeps struct {
	CourseStore      CourseStore
	LessonStore      LessonStore
	ParticipantStore ParticipantStore
	AttendanceStore  AttendanceStore
}

// ParticipantSummary is one roster line of the summary.
type ParticipantSummary struct {
	Name string
	attendance.Summary
}

// AttendanceSummaryResult carries the query result.
type AttendanceSummaryResult struct {
	CourseID     string
	Lessons      int
	Participants []ParticipantSummary
}

// QueryAttendanceSummary aggregates a course's attendance per participant.
// POST: One line per enrolled participant in enrollment order, zero counts when nothing is recorded
// INVARIANT: Unrecorded lessons are not counted as absences
func QueryAttendanceSummary(ctx context.Context, query AttendanceSummaryQuery, deps AttendanceSummaryDeps) (AttendanceSummaryResult, error) {
	c, err := ownedCourse(ctx, deps.CourseStore, query.CourseID, query.TeacherID)
	if err != nil {
		return AttendanceSummaryResult{}, err
	}
	participants, err := deps.ParticipantStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return AttendanceSummaryResult{}, err
	}
	lessons, err := deps.LessonStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return AttendanceSummaryResult{}, err
	}
	records, err := deps.AttendanceStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return AttendanceSummaryResult{}, err
	}

	byParticipant := make(map[string]*attendance.Summary, len(participants))
	for _, r := range records {
		s, ok := byParticipant[r.ParticipantID]
		if !ok {
			s = &attendance.Summary{ParticipantID: r.ParticipantID}
			byParticipant[r.ParticipantID] = s
		}
		s.Add(r)
	}

	result := AttendanceSummaryResult{
		CourseID:     c.ID,
		Lessons:      len(lessons),
		Participants: make([]ParticipantSummary, 0, len(participants)),
	}
	for _, p := range participants {
		line := ParticipantSummary{Name: p.Name, Summary: attendance.Summary{ParticipantID: p.ID}}
		if s, ok := byParticipant[p.ID]; ok {
			line.Summary = *s
		}
		result.Participants = append(result.Participants, line)
	}
	return result, nil
}
