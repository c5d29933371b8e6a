package web

import (
	"net/http"
	"strconv"
	"time"

	"lessonbook/internal/adapters/http/perf"
	"lessonbook/internal/application/projections"
	"lessonbook/internal/domain/dates"
)

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDashboard returns the teacher's courses and today's lessons across them.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	res, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		TeacherID: tid,
		Today:     timeNow(),
	}, projections.GetDashboardDeps{
		CourseStore: stores.CourseStore,
		LessonStore: stores.LessonStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	today := make([]map[string]any, 0, len(res.TodaysLessons))
	for _, tl := range res.TodaysLessons {
		today = append(today, map[string]any{"course_title": tl.CourseTitle, "lesson": toLessonView(tl.Lesson)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":           dates.ISO(res.Date),
		"courses":        toCourseViews(res.Courses),
		"todays_lessons": today,
	})
}

// handleAdminPerf returns request and query timings of the last ?minutes= (default 60).
// Only accounts listed in Options.AdminUsernames may read it.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if !requireAdmin(w, r) {
		return
	}
	minutes := 60
	if v := r.URL.Query().Get("minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be a positive integer"})
			return
		}
		minutes = n
	}
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, perf.Snapshot{})
		return
	}
	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}
