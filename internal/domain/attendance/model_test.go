package attendance_test

import (
	"errors"
	"testing"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/errs"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    attendance.Status
		wantErr bool
	}{
		{raw: "present", want: attendance.StatusPresent},
		{raw: "absent", want: attendance.StatusAbsent},
		{raw: "late", want: attendance.StatusLate},
		{raw: " late ", wantErr: true},
		{raw: "left_early", want: attendance.StatusLeftEarly},
		{raw: "sick", wantErr: true},
		{raw: "Present", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := attendance.ParseStatus(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, attendance.ErrInvalidStatus) || !errors.Is(err, errs.ErrInvalidArgument) {
					t.Fatalf("expected invalid status error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestRecord_Validate tests validation of Record.
func TestRecord_Validate(t *testing.T) {
	valid := attendance.Record{ID: "a1", LessonID: "l1", ParticipantID: "p1", Status: attendance.StatusLate, MinutesMissed: 15}
	tests := []struct {
		name    string
		mutate  func(r *attendance.Record)
		wantErr error
	}{
		{name: "valid", mutate: func(r *attendance.Record) {}},
		{name: "minutes kept for present", mutate: func(r *attendance.Record) { r.Status = attendance.StatusPresent }},
		{name: "unknown status", mutate: func(r *attendance.Record) { r.Status = "sick" }, wantErr: attendance.ErrInvalidStatus},
		{name: "negative minutes", mutate: func(r *attendance.Record) { r.MinutesMissed = -1 }, wantErr: attendance.ErrNegativeMinutes},
		{name: "missing lesson", mutate: func(r *attendance.Record) { r.LessonID = "" }, wantErr: attendance.ErrEmptyLessonID},
		{name: "missing participant", mutate: func(r *attendance.Record) { r.ParticipantID = "" }, wantErr: attendance.ErrEmptyParticipantID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrCrossCourse_IsConflict(t *testing.T) {
	if !errors.Is(attendance.ErrCrossCourse, errs.ErrConflict) {
		t.Error("cross-course attendance must be a conflict")
	}
}

func TestSummary_Add(t *testing.T) {
	s := attendance.Summary{ParticipantID: "p1"}
	for _, r := range []attendance.Record{
		{ParticipantID: "p1", Status: attendance.StatusPresent},
		{ParticipantID: "p1", Status: attendance.StatusLate, MinutesMissed: 10},
		{ParticipantID: "p1", Status: attendance.StatusLeftEarly, MinutesMissed: 20},
		{ParticipantID: "p1", Status: attendance.StatusAbsent},
	} {
		s.Add(r)
	}
	if s.Present != 1 || s.Late != 1 || s.LeftEarly != 1 || s.Absent != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.MinutesMissed != 30 {
		t.Errorf("MinutesMissed = %d, want 30", s.MinutesMissed)
	}
	if s.Recorded() != 4 {
		t.Errorf("Recorded() = %d, want 4", s.Recorded())
	}
}
