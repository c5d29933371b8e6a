package web

import (
	"net/http"

	"lessonbook/internal/application/orchestrators"
	"lessonbook/internal/application/projections"
)

type recordAttendanceRequest struct {
	LessonID string `json:"lesson_id" validate:"required"`
	attendanceEntry
}

type attendanceBatchRequest struct {
	LessonID string            `json:"lesson_id" validate:"required"`
	Entries  []attendanceEntry `json:"entries" validate:"required,dive"`
}

// handleAttendance handles GET/POST for /api/attendance
func handleAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		states, err := projections.QueryAttendanceForLesson(ctx, projections.AttendanceForLessonQuery{
			TeacherID: tid,
			LessonID:  r.URL.Query().Get("lesson_id"),
		}, projections.AttendanceForLessonDeps{
			CourseStore:     stores.CourseStore,
			LessonStore:     stores.LessonStore,
			AttendanceStore: stores.AttendanceStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAttendanceMap(states))

	case http.MethodPost:
		var req recordAttendanceRequest
		if err := bind(r, &req); err != nil {
			writeError(w, err)
			return
		}
		rec, err := orchestrators.ExecuteRecordAttendance(ctx, orchestrators.RecordAttendanceInput{
			TeacherID:     tid,
			LessonID:      req.LessonID,
			ParticipantID: req.ParticipantID,
			Status:        req.Status,
			MinutesMissed: req.MinutesMissed,
			Note:          req.Note,
		}, orchestrators.RecordAttendanceDeps{
			CourseStore:      stores.CourseStore,
			LessonStore:      stores.LessonStore,
			ParticipantStore: stores.ParticipantStore,
			AttendanceStore:  stores.AttendanceStore,
			GenerateID:       generateID,
			Now:              timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordView(rec))

	default:
		methodNotAllowed(w)
	}
}

func handleAttendanceBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	var req attendanceBatchRequest
	if err := bind(r, &req); err != nil {
		writeError(w, err)
		return
	}
	records, err := orchestrators.ExecuteRecordAttendanceBatch(r.Context(), orchestrators.RecordAttendanceBatchInput{
		TeacherID: tid,
		LessonID:  req.LessonID,
		Entries:   toEntries(req.Entries),
	}, orchestrators.RecordAttendanceBatchDeps{
		CourseStore:      stores.CourseStore,
		LessonStore:      stores.LessonStore,
		ParticipantStore: stores.ParticipantStore,
		AttendanceStore:  stores.AttendanceStore,
		GenerateID:       generateID,
		Now:              timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]recordView, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordView(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	res, err := projections.QueryAttendanceSummary(r.Context(), projections.AttendanceSummaryQuery{
		TeacherID: tid,
		CourseID:  r.URL.Query().Get("course_id"),
	}, projections.AttendanceSummaryDeps{
		CourseStore:      stores.CourseStore,
		LessonStore:      stores.LessonStore,
		ParticipantStore: stores.ParticipantStore,
		AttendanceStore:  stores.AttendanceStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"course_id":    res.CourseID,
		"lessons":      res.Lessons,
		"participants": toSummaryViews(res.Participants),
	})
}
