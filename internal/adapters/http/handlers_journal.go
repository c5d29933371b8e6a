package web

import (
	"fmt"
	"net/http"
	"strconv"

	"lessonbook/internal/application/orchestrators"
	"lessonbook/internal/application/projections"
	"lessonbook/internal/domain/journal"
)

type emailJournalRequest struct {
	CourseID   string   `json:"course_id" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,max=20,dive,email"`
	Message    string   `json:"message" validate:"max=2000"`
}

// handleJournal serves GET /api/journal?course_id=&format=
// JSON is returned inline; every other format is an attachment.
func handleJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	format, err := journal.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	j, err := projections.QueryCompileJournal(r.Context(), projections.CompileJournalQuery{
		TeacherID: tid,
		CourseID:  q.Get("course_id"),
	}, projections.CompileJournalDeps{
		CourseStore: stores.CourseStore,
		LessonStore: stores.LessonStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := renderer.Render(format, j)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	if format != journal.FormatJSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", j.FileName(format, timeNow())))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}

func handleJournalEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	tid, ok := teacherID(w, r)
	if !ok {
		return
	}
	var req emailJournalRequest
	if err := bind(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := orchestrators.ExecuteEmailJournal(r.Context(), orchestrators.EmailJournalInput{
		TeacherID:  tid,
		CourseID:   req.CourseID,
		Recipients: req.Recipients,
		Message:    req.Message,
	}, orchestrators.EmailJournalDeps{
		CourseStore: stores.CourseStore,
		LessonStore: stores.LessonStore,
		Renderer:    renderer,
		Sender:      emailSender,
		From:        emailFromAddress,
		ReplyTo:     emailReplyTo,
		Now:         timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"message_id": res.MessageID, "sent_at": res.SentAt})
}
