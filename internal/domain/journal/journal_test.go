package journal_test

import (
	"errors"
	"testing"
	"time"

	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/journal"
	"lessonbook/internal/domain/lesson"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestCompile_OrderAndPlaceholder checks the exact block output for a two-lesson course.
func TestCompile_OrderAndPlaceholder(t *testing.T) {
	c := course.Course{ID: "c1", Title: "German A1", StartDate: date(2024, 1, 8), EndDate: date(2024, 3, 25), TeacherID: "t1"}
	lessons := []lesson.Lesson{
		{ID: "l2", CourseID: "c1", Date: date(2024, 1, 17), PlanToday: "p", PlanNext: "n"},
		{ID: "l1", CourseID: "c1", Date: date(2024, 1, 10), Outcome: "Intro", PlanToday: "secret plan"},
	}

	j := journal.Compile(c, lessons)

	want := []journal.Block{
		{Kind: journal.KindTitle, Text: "German A1 (08.01.2024 - 25.03.2024)"},
		{Kind: journal.KindBody, Text: "10.01.2024: Intro"},
		{Kind: journal.KindBody, Text: "17.01.2024: no documentation available"},
	}
	if len(j.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(j.Blocks), len(want), j.Blocks)
	}
	for i := range want {
		if j.Blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, j.Blocks[i], want[i])
		}
	}
	if len(j.Entries) != 2 || j.Entries[0].LessonID != "l1" || j.Entries[1].Outcome != journal.NoDocumentation {
		t.Errorf("unexpected entries %+v", j.Entries)
	}
	// input slice order is untouched
	if lessons[0].ID != "l2" {
		t.Error("Compile must not reorder the caller's slice")
	}
}

func TestCompile_WhitespaceOutcomeUsesPlaceholder(t *testing.T) {
	c := course.Course{ID: "c1", Title: "T", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)}
	j := journal.Compile(c, []lesson.Lesson{{ID: "l1", CourseID: "c1", Date: date(2024, 1, 1), Outcome: "  \n"}})
	if j.Blocks[1].Text != "01.01.2024: no documentation available" {
		t.Errorf("unexpected block %q", j.Blocks[1].Text)
	}
}

func TestCompile_NoLessons(t *testing.T) {
	c := course.Course{ID: "c1", Title: "T", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)}
	j := journal.Compile(c, nil)
	if len(j.Blocks) != 1 || j.Blocks[0].Kind != journal.KindTitle {
		t.Errorf("expected only the header block, got %+v", j.Blocks)
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"", "json", "PDF", "xlsx", "md", "html"} {
		if _, err := journal.ParseFormat(f); err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", f, err)
		}
	}
	if _, err := journal.ParseFormat("docx"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for docx, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	j := journal.Journal{Title: "Deutsch für Anfänger!"}
	got := j.FileName(journal.FormatPDF, date(2024, 2, 1))
	if got != "journal-deutsch-f-r-anf-nger-2024-02-01.pdf" {
		t.Errorf("FileName() = %s", got)
	}
}
