package course

import (
	"fmt"
	"strings"
	"time"

	"lessonbook/internal/domain/errs"
)

// MaxTitleLength bounds the course title.
const MaxTitleLength = 100

// Domain errors
var (
	ErrEmptyTitle     = fmt.Errorf("%w: course title cannot be empty", errs.ErrInvalidArgument)
	ErrTitleTooLong   = fmt.Errorf("%w: course title cannot exceed %d characters", errs.ErrInvalidArgument, MaxTitleLength)
	ErrEmptyStartDate = fmt.Errorf("%w: start date cannot be zero", errs.ErrInvalidArgument)
	ErrEmptyEndDate   = fmt.Errorf("%w: end date cannot be zero", errs.ErrInvalidArgument)
	ErrInvalidDates   = fmt.Errorf("%w: end date cannot be before start date", errs.ErrInvalidArgument)
	ErrEmptyTeacherID = fmt.Errorf("%w: course must belong to a teacher", errs.ErrInvalidArgument)
)

// Course is a run of lessons owned by one teacher.
// It owns its participants and its lesson sequence.
type Course struct {
	ID        string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	TeacherID string
}

// Validate checks if the Course has valid data.
// PRE: Course struct is populated
// POST: Returns nil if valid, an ErrInvalidArgument error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if len(c.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if c.StartDate.IsZero() {
		return ErrEmptyStartDate
	}
	if c.EndDate.IsZero() {
		return ErrEmptyEndDate
	}
	if c.EndDate.Before(c.StartDate) {
		return ErrInvalidDates
	}
	if c.TeacherID == "" {
		return ErrEmptyTeacherID
	}
	return nil
}

// Contains returns true if the given date falls within the course, both ends inclusive.
// INVARIANT: Course fields are not mutated
func (c *Course) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	start := c.StartDate.Truncate(24 * time.Hour)
	end := c.EndDate.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}

// OwnedBy reports whether the course belongs to teacherID.
// An empty teacherID is a trusted internal caller and always matches.
func (c *Course) OwnedBy(teacherID string) bool {
	return teacherID == "" || c.TeacherID == teacherID
}
