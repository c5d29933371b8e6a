package participant

import (
	"fmt"
	"strings"
	"time"

	"lessonbook/internal/domain/errs"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 100
	MaxContactLength = 200
)

// Domain errors
var (
	ErrEmptyName      = fmt.Errorf("%w: participant name cannot be empty", errs.ErrInvalidArgument)
	ErrNameTooLong    = fmt.Errorf("%w: participant name cannot exceed %d characters", errs.ErrInvalidArgument, MaxNameLength)
	ErrContactTooLong = fmt.Errorf("%w: contact cannot exceed %d characters", errs.ErrInvalidArgument, MaxContactLength)
	ErrEmptyCourseID  = fmt.Errorf("%w: participant must belong to a course", errs.ErrInvalidArgument)
)

// Participant is a person enrolled in exactly one course.
type Participant struct {
	ID        string
	CourseID  string
	Name      string
	Contact   string // optional, stored verbatim
	CreatedAt time.Time
}

// Validate checks if the Participant has valid data.
// PRE: Participant struct is initialized
// POST: Returns an ErrInvalidArgument error if validation fails, nil otherwise
// INVARIANT: Name must not be blank, CourseID must be set
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(p.Contact) > MaxContactLength {
		return ErrContactTooLong
	}
	if p.CourseID == "" {
		return ErrEmptyCourseID
	}
	return nil
}
