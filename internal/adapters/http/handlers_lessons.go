package web

import (
	"net/http"

	"lessonbook/internal/application/orchestrators"
	"lessonbook/internal/application/projections"
	"lessonbook/internal/domain/lesson"
)

type addLessonRequest struct {
	CourseID  string `json:"course_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	PlanToday string `json:"plan_today"`
}

type lessonPlanRequest struct {
	LessonID  string `json:"lesson_id" validate:"required"`
	PlanToday string `json:"plan_today"`
	Outcome   string `json:"outcome"`
	PlanNext  string `json:"plan_next"`
}

func (req lessonPlanRequest) plan() lesson.Plan {
	return lesson.Plan{PlanToday: req.PlanToday, Outcome: req.Outcome, PlanNext: req.PlanNext}
}

type saveLessonRequest struct {
	lessonPlanRequest
	Attendance []attendanceEntry `json:"attendance" validate:"dive"`
}

// handleLessons handles GET/POST/DELETE for /api/lessons
func handleLessons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	switch r.Method {
	case http.MethodGet:
		lessons, err := projections.QueryListLessons(ctx, projections.ListLessonsQuery{
			TeacherID: tid,
			CourseID:  q.Get("course_id"),
			From:      q.Get("from"),
			To:        q.Get("to"),
		}, projections.ListLessonsDeps{
			CourseStore: stores.CourseStore,
			LessonStore: stores.LessonStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLessonViews(lessons))

	case http.MethodPost:
		var req addLessonRequest
		if err := bind(r, &req); err != nil {
			writeError(w, err)
			return
		}
		l, err := orchestrators.ExecuteAddLesson(ctx, orchestrators.AddLessonInput{
			TeacherID: tid,
			CourseID:  req.CourseID,
			Date:      req.Date,
			PlanToday: req.PlanToday,
		}, orchestrators.AddLessonDeps{
			CourseStore: stores.CourseStore,
			LessonStore: stores.LessonStore,
			GenerateID:  generateID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toLessonView(l))

	case http.MethodDelete:
		err := orchestrators.ExecuteDeleteLesson(ctx, orchestrators.DeleteLessonInput{
			TeacherID: tid,
			LessonID:  q.Get("id"),
		}, orchestrators.DeleteLessonDeps{
			CourseStore: stores.CourseStore,
			LessonStore: stores.LessonStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

func handleLessonDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	d, err := projections.QueryGetLessonDetail(r.Context(), projections.GetLessonDetailQuery{
		TeacherID: tid,
		LessonID:  r.URL.Query().Get("id"),
	}, projections.GetLessonDetailDeps{
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
		"lesson":       toLessonView(d.Lesson),
		"course":       toCourseView(d.Course),
		"participants": toParticipantViews(d.Participants),
		"attendance":   toAttendanceMap(d.Attendance),
	})
}

func nextView(next *lesson.Lesson) any {
	if next == nil {
		return nil
	}
	return toLessonView(*next)
}

// handleLessonPlan saves plan fields and carries plan_next over to the following lesson.
func handleLessonPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	var req lessonPlanRequest
	if err := bind(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := orchestrators.ExecuteSaveLessonPlan(r.Context(), orchestrators.SaveLessonPlanInput{
		TeacherID: tid,
		LessonID:  req.LessonID,
		Plan:      req.plan(),
	}, orchestrators.SaveLessonPlanDeps{
		CourseStore: stores.CourseStore,
		LessonStore: stores.LessonStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lesson": toLessonView(res.Lesson), "next": nextView(res.Next)})
}

// handleLessonSave stores plan fields and the attendance batch of a lesson in one call.
func handleLessonSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	var req saveLessonRequest
	if err := bind(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := orchestrators.ExecuteSaveLesson(r.Context(), orchestrators.SaveLessonInput{
		TeacherID:  tid,
		LessonID:   req.LessonID,
		Plan:       req.plan(),
		Attendance: toEntries(req.Attendance),
	}, orchestrators.SaveLessonDeps{
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
	records := make([]recordView, 0, len(res.Attendance))
	for _, rec := range res.Attendance {
		records = append(records, toRecordView(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lesson":     toLessonView(res.Lesson),
		"next":       nextView(res.Next),
		"attendance": records,
	})
}
