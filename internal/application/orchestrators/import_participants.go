package orchestrators

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/participant"
)

// ParticipantStoreForImport defines the store interface needed by ImportParticipants.
type ParticipantStoreForImport interface {
	SaveBatch(ctx context.Context, ps []participant.Participant) error
}

// ImportParticipantsInput carries the uploaded workbook and import options.
// The first sheet is read; row 1 is a header; column A is the name, column B the contact.
type ImportParticipantsInput struct {
	TeacherID string
	CourseID  string
	Reader    io.Reader
	DryRun    bool
}

// ImportParticipantsResult holds the outcome of one import run.
type ImportParticipantsResult struct {
	Imported []participant.Participant
	Skipped  []ImportRowError
	DryRun   bool
}

// ImportRowError describes why one spreadsheet row was not imported.
// Row is 1-based as shown by spreadsheet programs.
type ImportRowError struct {
	Row     int
	Message string
}

// ImportParticipantsDeps holds dependencies for ImportParticipants.
type ImportParticipantsDeps struct {
	CourseStore      CourseLookupStore
	ParticipantStore ParticipantStoreForImport
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteImportParticipants enrolls every valid row of an XLSX workbook.
// PRE: Reader holds an XLSX workbook; the course belongs to TeacherID
// POST: Valid rows are enrolled in sheet order in one transaction, invalid rows are reported;
// nothing is written when DryRun is set
func ExecuteImportParticipants(ctx context.Context, input ImportParticipantsInput, deps ImportParticipantsDeps) (ImportParticipantsResult, error) {
	if _, err := loadOwnedCourse(ctx, deps.CourseStore, input.CourseID, input.TeacherID); err != nil {
		return ImportParticipantsResult{}, err
	}
	if input.Reader == nil {
		return ImportParticipantsResult{}, errs.Invalid("a workbook file is required")
	}

	f, err := excelize.OpenReader(input.Reader)
	if err != nil {
		return ImportParticipantsResult{}, errs.Invalid("file is not a readable XLSX workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return ImportParticipantsResult{}, errs.Invalid("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportParticipantsResult{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	genID := idGenerator(deps.GenerateID)
	now := clock(deps.Now)()
	result := ImportParticipantsResult{
		Imported: []participant.Participant{},
		Skipped:  []ImportRowError{},
		DryRun:   input.DryRun,
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		var name, contact string
		if len(row) > 0 {
			name = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			contact = strings.TrimSpace(row[1])
		}
		if name == "" && contact == "" {
			continue
		}
		p := participant.Participant{
			ID:        genID(),
			CourseID:  input.CourseID,
			Name:      name,
			Contact:   contact,
			CreatedAt: now,
		}
		if err := p.Validate(); err != nil {
			result.Skipped = append(result.Skipped, ImportRowError{Row: i + 1, Message: err.Error()})
			continue
		}
		result.Imported = append(result.Imported, p)
	}

	if !input.DryRun && len(result.Imported) > 0 {
		if err := deps.ParticipantStore.SaveBatch(ctx, result.Imported); err != nil {
			return ImportParticipantsResult{}, err
		}
	}

	slog.Info("participant_event", "event", "participants_imported", "course_id", input.CourseID,
		"imported", len(result.Imported), "skipped", len(result.Skipped), "dry_run", input.DryRun)
	return result, nil
}
