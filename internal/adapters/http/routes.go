package web

import (
	"net/http"

	"lessonbook/internal/adapters/http/middleware"
)

// registerRoutes mounts every endpoint. Everything under /api needs a session.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	api := http.NewServeMux()
	api.HandleFunc("/api/csrf", handleCSRFToken)
	api.HandleFunc("/api/dashboard", handleDashboard)
	api.HandleFunc("/api/courses", handleCourses)
	api.HandleFunc("/api/courses/detail", handleCourseDetail)
	api.HandleFunc("/api/participants", handleParticipants)
	api.HandleFunc("/api/participants/import", handleParticipantImport)
	api.HandleFunc("/api/participants/roster", handleParticipantRoster)
	api.HandleFunc("/api/lessons", handleLessons)
	api.HandleFunc("/api/lessons/detail", handleLessonDetail)
	api.HandleFunc("/api/lessons/plan", handleLessonPlan)
	api.HandleFunc("/api/lessons/save", handleLessonSave)
	api.HandleFunc("/api/attendance", handleAttendance)
	api.HandleFunc("/api/attendance/batch", handleAttendanceBatch)
	api.HandleFunc("/api/attendance/summary", handleAttendanceSummary)
	api.HandleFunc("/api/journal", handleJournal)
	api.HandleFunc("/api/journal/email", handleJournalEmail)
	api.HandleFunc("/api/admin/perf", handleAdminPerf)
	mux.Handle("/api/", middleware.RequireAuth(api))
}
