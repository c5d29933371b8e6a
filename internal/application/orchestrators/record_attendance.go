package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/participant"
)

// ParticipantLookupStore defines the participant read needed to check enrolment.
type ParticipantLookupStore interface {
	GetByID(ctx context.Context, id string) (participant.Participant, error)
}

// AttendanceStoreForRecord defines the store interface needed by RecordAttendance.
type AttendanceStoreForRecord interface {
	Upsert(ctx context.Context, r attendance.Record) error
	GetByKey(ctx context.Context, key attendance.Key) (attendance.Record, error)
}

// AttendanceStoreForBatch defines the store interface needed by batch recording.
type AttendanceStoreForBatch interface {
	UpsertBatch(ctx context.Context, rs []attendance.Record) ([]attendance.Record, error)
}

// RecordAttendanceInput carries one participant's attendance for one lesson.
type RecordAttendanceInput struct {
	TeacherID     string
	LessonID      string
	ParticipantID string
	Status        string
	MinutesMissed int
	Note          string
}

// RecordAttendanceDeps holds dependencies for RecordAttendance.
type RecordAttendanceDeps struct {
	CourseStore      CourseLookupStore
	LessonStore      LessonLookupStore
	ParticipantStore ParticipantLookupStore
	AttendanceStore  AttendanceStoreForRecord
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteRecordAttendance creates or overwrites the attendance of one participant for one lesson.
// PRE: Status is a known value, MinutesMissed >= 0; lesson and participant exist in the same course
// POST: Exactly one record exists for (LessonID, ParticipantID) holding the given state
// INVARIANT: Never touches lesson plans
func ExecuteRecordAttendance(ctx context.Context, input RecordAttendanceInput, deps RecordAttendanceDeps) (attendance.Record, error) {
	entry := attendance.Entry{
		ParticipantID: input.ParticipantID,
		Status:        input.Status,
		MinutesMissed: input.MinutesMissed,
		Note:          input.Note,
	}
	// Reject malformed input before touching storage.
	if _, err := entryRecord(input.LessonID, entry, "", time.Time{}); err != nil {
		return attendance.Record{}, err
	}

	l, err := loadOwnedLesson(ctx, deps.LessonStore, deps.CourseStore, input.LessonID, input.TeacherID)
	if err != nil {
		return attendance.Record{}, err
	}
	records, err := prepareAttendance(ctx, l, []attendance.Entry{entry}, deps.ParticipantStore, idGenerator(deps.GenerateID), clock(deps.Now)())
	if err != nil {
		return attendance.Record{}, err
	}

	if err := deps.AttendanceStore.Upsert(ctx, records[0]); err != nil {
		return attendance.Record{}, err
	}
	stored, err := deps.AttendanceStore.GetByKey(ctx, records[0].Key())
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("attendance_event", "event", "attendance_recorded", "lesson_id", l.ID,
		"participant_id", stored.ParticipantID, "status", string(stored.Status), "minutes_missed", stored.MinutesMissed)
	return stored, nil
}

// RecordAttendanceBatchInput carries the attendance of several participants for one lesson.
type RecordAttendanceBatchInput struct {
	TeacherID string
	LessonID  string
	Entries   []attendance.Entry
}

// RecordAttendanceBatchDeps holds dependencies for RecordAttendanceBatch.
type RecordAttendanceBatchDeps struct {
	CourseStore      CourseLookupStore
	LessonStore      LessonLookupStore
	ParticipantStore ParticipantLookupStore
	AttendanceStore  AttendanceStoreForBatch
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteRecordAttendanceBatch upserts a list of entries for one lesson as a unit.
// PRE: Every entry is valid and names a distinct participant of the lesson's course
// POST: Either every entry is applied or, on any error, none is
func ExecuteRecordAttendanceBatch(ctx context.Context, input RecordAttendanceBatchInput, deps RecordAttendanceBatchDeps) ([]attendance.Record, error) {
	l, err := loadOwnedLesson(ctx, deps.LessonStore, deps.CourseStore, input.LessonID, input.TeacherID)
	if err != nil {
		return nil, err
	}
	records, err := prepareAttendance(ctx, l, input.Entries, deps.ParticipantStore, idGenerator(deps.GenerateID), clock(deps.Now)())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}
	stored, err := deps.AttendanceStore.UpsertBatch(ctx, records)
	if err != nil {
		return nil, err
	}

	slog.Info("attendance_event", "event", "attendance_batch_recorded", "lesson_id", l.ID, "entries", len(stored))
	return stored, nil
}

// prepareAttendance validates entries for lesson l and turns them into records.
// Nothing is written; callers persist the result.
// POST: Returns one record per entry in input order, or the first error found
func prepareAttendance(ctx context.Context, l lesson.Lesson, entries []attendance.Entry, participants ParticipantLookupStore, genID func() string, now time.Time) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		e.ParticipantID = strings.TrimSpace(e.ParticipantID)
		r, err := entryRecord(l.ID, e, genID(), now)
		if err != nil {
			return nil, entryError(i, len(entries), err)
		}
		if seen[r.ParticipantID] {
			return nil, entryError(i, len(entries), attendance.ErrDuplicateParticipant)
		}
		seen[r.ParticipantID] = true
		records = append(records, r)
	}

	for i, r := range records {
		p, err := participants.GetByID(ctx, r.ParticipantID)
		if err != nil {
			return nil, entryError(i, len(records), err)
		}
		if p.CourseID != l.CourseID {
			return nil, entryError(i, len(records), attendance.ErrCrossCourse)
		}
	}
	return records, nil
}

func entryRecord(lessonID string, e attendance.Entry, id string, now time.Time) (attendance.Record, error) {
	status, err := attendance.ParseStatus(e.Status)
	if err != nil {
		return attendance.Record{}, err
	}
	r := attendance.Record{
		ID:            id,
		LessonID:      lessonID,
		ParticipantID: e.ParticipantID,
		Status:        status,
		MinutesMissed: e.MinutesMissed,
		Note:          e.Note,
		UpdatedAt:     now,
	}
	if err := r.Validate(); err != nil {
		return attendance.Record{}, err
	}
	return r, nil
}

// entryError prefixes err with the entry position when it came from a batch.
func entryError(i, total int, err error) error {
	if total <= 1 {
		return err
	}
	return fmt.Errorf("entry %d: %w", i+1, err)
}
