package web

import (
	"lessonbook/internal/application/projections"
	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/participant"
)

// Dates are sent as YYYY-MM-DD for clients and DD.MM.YYYY for display.
type courseView struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	StartDateDisplay string `json:"start_date_display"`
	EndDateDisplay   string `json:"end_date_display"`
}

func toCourseView(c course.Course) courseView {
	return courseView{
		ID:               c.ID,
		Title:            c.Title,
		StartDate:        dates.ISO(c.StartDate),
		EndDate:          dates.ISO(c.EndDate),
		StartDateDisplay: dates.Display(c.StartDate),
		EndDateDisplay:   dates.Display(c.EndDate),
	}
}

func toCourseViews(cs []course.Course) []courseView {
	out := make([]courseView, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCourseView(c))
	}
	return out
}

type participantView struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Contact  string `json:"contact,omitempty"`
}

func toParticipantViews(ps []participant.Participant) []participantView {
	out := make([]participantView, 0, len(ps))
	for _, p := range ps {
		out = append(out, participantView{ID: p.ID, CourseID: p.CourseID, Name: p.Name, Contact: p.Contact})
	}
	return out
}

type lessonView struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Date        string `json:"date"`
	DateDisplay string `json:"date_display"`
	PlanToday   string `json:"plan_today"`
	Outcome     string `json:"outcome"`
	PlanNext    string `json:"plan_next"`
}

func toLessonView(l lesson.Lesson) lessonView {
	return lessonView{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Date:        dates.ISO(l.Date),
		DateDisplay: dates.Display(l.Date),
		PlanToday:   l.PlanToday,
		Outcome:     l.Outcome,
		PlanNext:    l.PlanNext,
	}
}

func toLessonViews(ls []lesson.Lesson) []lessonView {
	out := make([]lessonView, 0, len(ls))
	for _, l := range ls {
		out = append(out, toLessonView(l))
	}
	return out
}

type attendanceView struct {
	Status        string `json:"status"`
	MinutesMissed int    `json:"minutes_missed"`
	Note          string `json:"note"`
}

func toAttendanceMap(states map[string]attendance.State) map[string]attendanceView {
	out := make(map[string]attendanceView, len(states))
	for id, s := range states {
		out[id] = attendanceView{Status: string(s.Status), MinutesMissed: s.MinutesMissed, Note: s.Note}
	}
	return out
}

type recordView struct {
	ID            string `json:"id"`
	LessonID      string `json:"lesson_id"`
	ParticipantID string `json:"participant_id"`
	attendanceView
}

func toRecordView(r attendance.Record) recordView {
	return recordView{
		ID:             r.ID,
		LessonID:       r.LessonID,
		ParticipantID:  r.ParticipantID,
		attendanceView: attendanceView{Status: string(r.Status), MinutesMissed: r.MinutesMissed, Note: r.Note},
	}
}

type summaryView struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Present       int    `json:"present"`
	Absent        int    `json:"absent"`
	Late          int    `json:"late"`
	LeftEarly     int    `json:"left_early"`
	Recorded      int    `json:"recorded"`
	MinutesMissed int    `json:"minutes_missed"`
}

func toSummaryViews(lines []projections.ParticipantSummary) []summaryView {
	out := make([]summaryView, 0, len(lines))
	for _, l := range lines {
		out = append(out, summaryView{
			ParticipantID: l.ParticipantID,
			Name:          l.Name,
			Present:       l.Present,
			Absent:        l.Absent,
			Late:          l.Late,
			LeftEarly:     l.LeftEarly,
			Recorded:      l.Recorded(),
			MinutesMissed: l.MinutesMissed,
		})
	}
	return out
}

// attendanceEntry is the wire form of one attendance line in a request.
type attendanceEntry struct {
	ParticipantID string `json:"participant_id" validate:"required,notblank"`
	Status        string `json:"status" validate:"required,attendance_status"`
	MinutesMissed int    `json:"minutes_missed" validate:"gte=0"`
	Note          string `json:"note" validate:"max=500"`
}

func toEntries(in []attendanceEntry) []attendance.Entry {
	out := make([]attendance.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, attendance.Entry{
			ParticipantID: e.ParticipantID,
			Status:        e.Status,
			MinutesMissed: e.MinutesMissed,
			Note:          e.Note,
		})
	}
	return out
}
