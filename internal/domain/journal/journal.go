// Package journal compiles a course's lesson history into an ordered,
// read-only sequence of text blocks for document rendering.
package journal

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
)

// NoDocumentation replaces an empty lesson outcome.
const NoDocumentation = "no documentation available"

// BlockKind classifies a block for the document renderer.
type BlockKind string

// Block kinds understood by renderers.
const (
	KindTitle   BlockKind = "title"
	KindHeading BlockKind = "heading"
	KindBody    BlockKind = "body"
)

// Format constants for journal export.
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatPDF      = "pdf"
	FormatXLSX     = "xlsx"
)

// ValidFormats contains all supported export formats.
var ValidFormats = []string{FormatJSON, FormatMarkdown, FormatHTML, FormatPDF, FormatXLSX}

// ErrInvalidFormat is returned for an unsupported export format.
var ErrInvalidFormat = fmt.Errorf("%w: format must be one of: %s", errs.ErrInvalidArgument, strings.Join(ValidFormats, ", "))

// Block is one unit of document content.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// Entry is the journal line for one lesson.
type Entry struct {
	LessonID string    `json:"lesson_id"`
	Date     time.Time `json:"date"`
	Outcome  string    `json:"outcome"` // placeholder already applied
}

// Journal is the compiled outcomes record of a course.
type Journal struct {
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Entries   []Entry   `json:"entries"`
	Blocks    []Block   `json:"blocks"`
}

// Compile builds the journal of c from its lessons.
// PRE: lessons belong to c; order does not matter
// POST: Blocks hold one title block then one body block per lesson in ascending date order
// INVARIANT: neither c nor lessons are mutated; plans and attendance are never included
func Compile(c course.Course, lessons []lesson.Lesson) Journal {
	ordered := make([]lesson.Lesson, len(lessons))
	copy(ordered, lessons)
	lesson.SortByDate(ordered)

	j := Journal{
		CourseID:  c.ID,
		Title:     c.Title,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Entries:   make([]Entry, 0, len(ordered)),
		Blocks:    make([]Block, 0, len(ordered)+1),
	}
	j.Blocks = append(j.Blocks, Block{Kind: KindTitle, Text: Header(c)})

	for _, l := range ordered {
		outcome := strings.TrimSpace(l.Outcome)
		if outcome == "" {
			outcome = NoDocumentation
		}
		j.Entries = append(j.Entries, Entry{LessonID: l.ID, Date: l.Date, Outcome: outcome})
		j.Blocks = append(j.Blocks, Block{
			Kind: KindBody,
			Text: fmt.Sprintf("%s: %s", dates.Display(l.Date), outcome),
		})
	}
	return j
}

// Header is the title line of a course journal.
func Header(c course.Course) string {
	return fmt.Sprintf("%s (%s - %s)", c.Title, dates.Display(c.StartDate), dates.Display(c.EndDate))
}

// ParseFormat validates a requested export format. Empty means JSON.
func ParseFormat(raw string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(raw))
	if f == "" {
		return FormatJSON, nil
	}
	for _, v := range ValidFormats {
		if f == v {
			return f, nil
		}
	}
	return "", ErrInvalidFormat
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// FileName returns the download name for the journal in the given format.
func (j *Journal) FileName(format string, now time.Time) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(j.Title), "-"), "-")
	if slug == "" {
		slug = "course"
	}
	return fmt.Sprintf("journal-%s-%s.%s", slug, dates.ISO(now), format)
}

// ToJSON serializes the Journal to JSON format.
// PRE: Journal is compiled
// POST: Returns indented JSON bytes
func (j *Journal) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}
