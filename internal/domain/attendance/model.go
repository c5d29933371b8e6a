package attendance

import (
	"fmt"
	"time"

	"lessonbook/internal/domain/errs"
)

// Status is the attendance state of a participant for one lesson.
type Status string

// Recognized statuses. Any other value is rejected.
const (
	StatusPresent   Status = "present"
	StatusAbsent    Status = "absent"
	StatusLate      Status = "late"
	StatusLeftEarly Status = "left_early"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusLeftEarly}

// MaxNoteLength bounds the free-text note.
const MaxNoteLength = 500

// Domain errors
var (
	ErrInvalidStatus        = fmt.Errorf("%w: status must be one of: present, absent, late, left_early", errs.ErrInvalidArgument)
	ErrNegativeMinutes      = fmt.Errorf("%w: minutes missed cannot be negative", errs.ErrInvalidArgument)
	ErrNoteTooLong          = fmt.Errorf("%w: note cannot exceed %d characters", errs.ErrInvalidArgument, MaxNoteLength)
	ErrEmptyLessonID        = fmt.Errorf("%w: attendance must reference a lesson", errs.ErrInvalidArgument)
	ErrEmptyParticipantID   = fmt.Errorf("%w: attendance must reference a participant", errs.ErrInvalidArgument)
	ErrDuplicateParticipant = fmt.Errorf("%w: participant appears more than once in the batch", errs.ErrInvalidArgument)
	ErrCrossCourse          = fmt.Errorf("%w: participant is not enrolled in the lesson's course", errs.ErrConflict)
)

// ParseStatus converts raw input into a Status.
// POST: Returns ErrInvalidStatus for anything outside ValidStatuses
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w (got %q)", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// State is the externally visible attendance of one participant for one lesson.
type State struct {
	Status        Status
	MinutesMissed int
	Note          string
}

// Entry is one line of a batch submission for a single lesson.
type Entry struct {
	ParticipantID string
	Status        string
	MinutesMissed int
	Note          string
}

// Record is the stored attendance of one participant for one lesson.
// Exactly one Record exists per (LessonID, ParticipantID).
type Record struct {
	ID            string
	LessonID      string
	ParticipantID string
	Status        Status
	MinutesMissed int // only meaningful for late/left_early, preserved verbatim
	Note          string
	UpdatedAt     time.Time
}

// Key returns the (lesson, participant) pair that identifies the record.
func (r *Record) Key() Key {
	return Key{LessonID: r.LessonID, ParticipantID: r.ParticipantID}
}

// State returns the externally visible part of the record.
func (r *Record) State() State {
	return State{Status: r.Status, MinutesMissed: r.MinutesMissed, Note: r.Note}
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns an ErrInvalidArgument error if validation fails, nil otherwise
// INVARIANT: Status is one of ValidStatuses, MinutesMissed >= 0
func (r *Record) Validate() error {
	if r.LessonID == "" {
		return ErrEmptyLessonID
	}
	if r.ParticipantID == "" {
		return ErrEmptyParticipantID
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w (got %q)", ErrInvalidStatus, string(r.Status))
	}
	if r.MinutesMissed < 0 {
		return ErrNegativeMinutes
	}
	if len(r.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

// Key is the effective unique key of the ledger.
type Key struct {
	LessonID      string
	ParticipantID string
}

// Summary aggregates one participant's attendance across a course.
type Summary struct {
	ParticipantID string
	Present       int
	Absent        int
	Late          int
	LeftEarly     int
	MinutesMissed int
}

// Recorded returns the number of lessons with any recorded status.
func (s *Summary) Recorded() int {
	return s.Present + s.Absent + s.Late + s.LeftEarly
}

// Add folds one record into the summary.
// PRE: r.ParticipantID == s.ParticipantID
func (s *Summary) Add(r Record) {
	switch r.Status {
	case StatusPresent:
		s.Present++
	case StatusAbsent:
		s.Absent++
	case StatusLate:
		s.Late++
	case StatusLeftEarly:
		s.LeftEarly++
	}
	s.MinutesMissed += r.MinutesMissed
}
