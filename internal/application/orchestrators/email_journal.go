package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"lessonbook/internal/adapters/document"
	emailAdapter "lessonbook/internal/adapters/email"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/journal"
	"lessonbook/internal/domain/lesson"
)

// LessonListStore defines the lesson listing needed to compile a journal.
type LessonListStore interface {
	ListByCourseID(ctx context.Context, courseID string) ([]lesson.Lesson, error)
}

// JournalRenderer renders a compiled journal into a file format.
type JournalRenderer interface {
	Render(format string, j journal.Journal) (document.Document, error)
}

// EmailJournalInput carries input for emailing a course journal.
type EmailJournalInput struct {
	TeacherID  string
	CourseID   string
	Recipients []string
	Message    string // optional note placed above the journal
}

// EmailJournalDeps holds dependencies for EmailJournal.
type EmailJournalDeps struct {
	CourseStore CourseLookupStore
	LessonStore LessonListStore
	Renderer    JournalRenderer
	Sender      emailAdapter.Sender
	From        string
	ReplyTo     string
	Now         func() time.Time
}

// ExecuteEmailJournal compiles a course journal and emails it as HTML with a PDF attachment.
// PRE: At least one valid recipient address; the course belongs to TeacherID
// POST: One email is accepted by the sender; returns the provider's result
func ExecuteEmailJournal(ctx context.Context, input EmailJournalInput, deps EmailJournalDeps) (emailAdapter.SendResult, error) {
	if len(input.Recipients) == 0 {
		return emailAdapter.SendResult{}, errs.Invalid("at least one recipient is required")
	}
	to := make([]string, 0, len(input.Recipients))
	for _, r := range input.Recipients {
		addr, err := mail.ParseAddress(strings.TrimSpace(r))
		if err != nil {
			return emailAdapter.SendResult{}, errs.Invalid("invalid recipient %q", r)
		}
		to = append(to, addr.Address)
	}

	c, err := loadOwnedCourse(ctx, deps.CourseStore, input.CourseID, input.TeacherID)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}
	lessons, err := deps.LessonStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}
	j := journal.Compile(c, lessons)

	page, err := deps.Renderer.Render(journal.FormatHTML, j)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}
	pdf, err := deps.Renderer.Render(journal.FormatPDF, j)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}

	body := string(page.Body)
	if msg := strings.TrimSpace(input.Message); msg != "" {
		body = strings.Replace(body, "<body>\n", "<body>\n<p>"+html.EscapeString(msg)+"</p>\n", 1)
	}

	res, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      to,
		From:    deps.From,
		ReplyTo: deps.ReplyTo,
		Subject: fmt.Sprintf("Journal: %s", journal.Header(c)),
		HTML:    body,
		Attachments: []emailAdapter.Attachment{{
			Filename:    j.FileName(journal.FormatPDF, clock(deps.Now)()),
			ContentType: pdf.ContentType,
			Content:     pdf.Body,
		}},
	})
	if err != nil {
		return emailAdapter.SendResult{}, err
	}

	slog.Info("journal_event", "event", "journal_emailed", "course_id", c.ID, "recipients", len(to), "message_id", res.MessageID)
	return res, nil
}
