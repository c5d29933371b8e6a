package lesson

import (
	"fmt"
	"sort"
	"time"

	"lessonbook/internal/domain/errs"
)

// Domain errors
var (
	ErrEmptyCourseID = fmt.Errorf("%w: lesson must belong to a course", errs.ErrInvalidArgument)
	ErrEmptyDate     = fmt.Errorf("%w: lesson date cannot be zero", errs.ErrInvalidArgument)
	ErrDuplicateDate = fmt.Errorf("%w: course already has a lesson on this date", errs.ErrConflict)
)

// Lesson is one dated session of a course.
// Date has day granularity; the time-of-day component is always zero.
type Lesson struct {
	ID        string
	CourseID  string
	Date      time.Time
	PlanToday string // plan for this lesson's date
	Outcome   string // what was actually done
	PlanNext  string // draft plan for the chronologically next lesson
}

// Plan carries the three editable text fields of a lesson.
type Plan struct {
	PlanToday string
	Outcome   string
	PlanNext  string
}

// Validate checks if the Lesson has valid data.
// PRE: Lesson struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lesson) Validate() error {
	if l.CourseID == "" {
		return ErrEmptyCourseID
	}
	if l.Date.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// ApplyPlan overwrites the three text fields.
// POST: PlanToday, Outcome and PlanNext equal the given plan
func (l *Lesson) ApplyPlan(p Plan) {
	l.PlanToday = p.PlanToday
	l.Outcome = p.Outcome
	l.PlanNext = p.PlanNext
}

// CarryOverTo copies this lesson's PlanNext into next.PlanToday.
// PRE: next is the chronologically next lesson of the same course
// POST: next.PlanToday == l.PlanNext; no other field of next changes
func (l *Lesson) CarryOverTo(next *Lesson) {
	next.PlanToday = l.PlanNext
}

// Before orders lessons by date, then by ID for a deterministic tie-break.
func (l *Lesson) Before(other Lesson) bool {
	if !l.Date.Equal(other.Date) {
		return l.Date.Before(other.Date)
	}
	return l.ID < other.ID
}

// SortByDate sorts lessons ascending by date, ties by ID.
// POST: lessons is ordered; the slice is sorted in place
func SortByDate(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Before(lessons[j])
	})
}
