package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/participant"
)

func TestRecordAttendance_SecondRecordOverwrites(t *testing.T) {
	f := newFixture()
	deps := f.recordDeps()
	ctx := context.Background()

	first, err := ExecuteRecordAttendance(ctx, RecordAttendanceInput{
		TeacherID: "teacher-1", LessonID: "L1", ParticipantID: "P1", Status: "present",
	}, deps)
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	second, err := ExecuteRecordAttendance(ctx, RecordAttendanceInput{
		TeacherID: "teacher-1", LessonID: "L1", ParticipantID: "P1", Status: "late", MinutesMissed: 15, Note: "bus",
	}, deps)
	if err != nil {
		t.Fatalf("second record: %v", err)
	}

	records := f.attendance.forLesson("L1")
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}
	got := records[0]
	if got.Status != attendance.StatusLate || got.MinutesMissed != 15 || got.Note != "bus" {
		t.Errorf("unexpected state %+v", got)
	}
	if second.ID != first.ID {
		t.Errorf("record identity changed: %s -> %s", first.ID, second.ID)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, testNow)
	}
}

func TestRecordAttendance_MinutesKeptVerbatim(t *testing.T) {
	f := newFixture()
	r, err := ExecuteRecordAttendance(context.Background(), RecordAttendanceInput{
		LessonID: "L1", ParticipantID: "P2", Status: "present", MinutesMissed: 7,
	}, f.recordDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.MinutesMissed != 7 {
		t.Errorf("minutes_missed = %d, want 7", r.MinutesMissed)
	}
}

func TestRecordAttendance_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   RecordAttendanceInput
		wantErr error
	}{
		{name: "unknown status", input: RecordAttendanceInput{LessonID: "L1", ParticipantID: "P1", Status: "sick"}, wantErr: attendance.ErrInvalidStatus},
		{name: "padded status", input: RecordAttendanceInput{LessonID: "L1", ParticipantID: "P1", Status: " present "}, wantErr: attendance.ErrInvalidStatus},
		{name: "negative minutes", input: RecordAttendanceInput{LessonID: "L1", ParticipantID: "P1", Status: "late", MinutesMissed: -5}, wantErr: attendance.ErrNegativeMinutes},
		{name: "missing participant", input: RecordAttendanceInput{LessonID: "L1", Status: "present"}, wantErr: errs.ErrInvalidArgument},
		{name: "unknown participant", input: RecordAttendanceInput{LessonID: "L1", ParticipantID: "ghost", Status: "present"}, wantErr: errs.ErrNotFound},
		{name: "unknown lesson", input: RecordAttendanceInput{LessonID: "L9", ParticipantID: "P1", Status: "present"}, wantErr: errs.ErrNotFound},
		{name: "other course", input: RecordAttendanceInput{LessonID: "L1", ParticipantID: "Q1", Status: "present"}, wantErr: attendance.ErrCrossCourse},
		{name: "foreign teacher", input: RecordAttendanceInput{TeacherID: "teacher-2", LessonID: "L1", ParticipantID: "P1", Status: "present"}, wantErr: errs.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := ExecuteRecordAttendance(context.Background(), tt.input, f.recordDeps())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if n := len(f.attendance.records); n != 0 {
				t.Errorf("expected no records, got %d", n)
			}
		})
	}
}

func TestRecordAttendance_ConcurrentParticipants(t *testing.T) {
	f := newFixture()
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("S%d", i)
		_ = f.participants.Save(context.Background(), participant.Participant{ID: id, CourseID: "c1", Name: id})
	}
	deps := f.recordDeps()

	var wg sync.WaitGroup
	errCh := make(chan error, 5)
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := ExecuteRecordAttendance(context.Background(), RecordAttendanceInput{
				LessonID: "L2", ParticipantID: fmt.Sprintf("S%d", i), Status: "present",
			}, deps)
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := len(f.attendance.forLesson("L2")); got != 5 {
		t.Errorf("expected 5 records, got %d", got)
	}
}

func TestRecordAttendanceBatch(t *testing.T) {
	f := newFixture()
	records, err := ExecuteRecordAttendanceBatch(context.Background(), RecordAttendanceBatchInput{
		TeacherID: "teacher-1",
		LessonID:  "L1",
		Entries: []attendance.Entry{
			{ParticipantID: "P1", Status: "present"},
			{ParticipantID: "P2", Status: "left_early", MinutesMissed: 20},
		},
	}, f.batchDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	stored := f.attendance.forLesson("L1")
	if len(stored) != 2 || stored[1].Status != attendance.StatusLeftEarly || stored[1].MinutesMissed != 20 {
		t.Errorf("unexpected stored records %+v", stored)
	}
}

func TestRecordAttendanceBatch_ReturnsStoredIDs(t *testing.T) {
	f := newFixture()
	deps := f.batchDeps()
	batch := func(status string) []attendance.Record {
		t.Helper()
		records, err := ExecuteRecordAttendanceBatch(context.Background(), RecordAttendanceBatchInput{
			LessonID: "L1",
			Entries:  []attendance.Entry{{ParticipantID: "P1", Status: status}},
		}, deps)
		if err != nil {
			t.Fatalf("batch %s: %v", status, err)
		}
		return records
	}

	first := batch("present")
	second := batch("late")

	stored, err := f.attendance.GetByKey(context.Background(), attendance.Key{LessonID: "L1", ParticipantID: "P1"})
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if second[0].ID != stored.ID || first[0].ID != stored.ID {
		t.Errorf("ids: first=%s second=%s stored=%s", first[0].ID, second[0].ID, stored.ID)
	}
}

func TestRecordAttendanceBatch_AllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		entries []attendance.Entry
		wantErr error
	}{
		{
			name:    "duplicate participant",
			entries: []attendance.Entry{{ParticipantID: "P1", Status: "present"}, {ParticipantID: "P1", Status: "absent"}},
			wantErr: attendance.ErrDuplicateParticipant,
		},
		{
			name:    "one invalid status",
			entries: []attendance.Entry{{ParticipantID: "P1", Status: "present"}, {ParticipantID: "P2", Status: "sick"}},
			wantErr: attendance.ErrInvalidStatus,
		},
		{
			name:    "participant of another course",
			entries: []attendance.Entry{{ParticipantID: "P1", Status: "present"}, {ParticipantID: "Q1", Status: "present"}},
			wantErr: attendance.ErrCrossCourse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := ExecuteRecordAttendanceBatch(context.Background(), RecordAttendanceBatchInput{LessonID: "L1", Entries: tt.entries}, f.batchDeps())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if n := len(f.attendance.records); n != 0 {
				t.Errorf("expected no records, got %d", n)
			}
		})
	}
}

func TestRecordAttendanceBatch_StoreFailure(t *testing.T) {
	f := newFixture()
	f.attendance.batchErr = errors.New("tx aborted")
	_, err := ExecuteRecordAttendanceBatch(context.Background(), RecordAttendanceBatchInput{
		LessonID: "L1",
		Entries:  []attendance.Entry{{ParticipantID: "P1", Status: "present"}},
	}, f.batchDeps())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordAttendanceBatch_Empty(t *testing.T) {
	f := newFixture()
	records, err := ExecuteRecordAttendanceBatch(context.Background(), RecordAttendanceBatchInput{LessonID: "L1"}, f.batchDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
