// Package dates holds the date conventions used at every boundary:
// dates are accepted as YYYY-MM-DD and displayed as DD.MM.YYYY.
package dates

import (
	"strings"
	"time"

	"lessonbook/internal/domain/errs"
)

// Layouts for input and display.
const (
	InputLayout   = "2006-01-02"
	DisplayLayout = "02.01.2006"
)

// Parse reads a YYYY-MM-DD date and returns it at midnight UTC.
// PRE: s may be empty or malformed
// POST: Returns an ErrInvalidArgument error if s is not a calendar date
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errs.Invalid("date is required")
	}
	t, err := time.Parse(InputLayout, s)
	if err != nil {
		return time.Time{}, errs.Invalid("date %q must use the YYYY-MM-DD format", s)
	}
	return t, nil
}

// Truncate drops the time-of-day component, keeping the calendar date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISO formats t as YYYY-MM-DD.
func ISO(t time.Time) string {
	return t.Format(InputLayout)
}

// Display formats t as DD.MM.YYYY.
func Display(t time.Time) string {
	return t.Format(DisplayLayout)
}
