package orchestrators

import (
	"context"
	"errors"
	"testing"

	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
)

func TestAddLesson(t *testing.T) {
	f := newFixture()
	deps := AddLessonDeps{CourseStore: f.courses, LessonStore: f.lessons, GenerateID: sequentialIDs("lesson")}

	l, err := ExecuteAddLesson(context.Background(), AddLessonInput{
		TeacherID: "teacher-1",
		CourseID:  "c1",
		Date:      "2024-01-31",
		PlanToday: "revision",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID != "lesson-1" || l.CourseID != "c1" || !l.Date.Equal(day("2024-01-31")) || l.PlanToday != "revision" {
		t.Errorf("unexpected lesson %+v", l)
	}
	if _, err := f.lessons.GetByID(context.Background(), "lesson-1"); err != nil {
		t.Errorf("lesson not stored: %v", err)
	}
}

func TestAddLesson_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   AddLessonInput
		wantErr error
	}{
		{name: "bad date", input: AddLessonInput{CourseID: "c1", Date: "31.01.2024"}, wantErr: errs.ErrInvalidArgument},
		{name: "outside course", input: AddLessonInput{CourseID: "c1", Date: "2024-06-01"}, wantErr: errs.ErrInvalidArgument},
		{name: "missing course", input: AddLessonInput{Date: "2024-01-31"}, wantErr: errs.ErrInvalidArgument},
		{name: "unknown course", input: AddLessonInput{CourseID: "zz", Date: "2024-01-31"}, wantErr: errs.ErrNotFound},
		{name: "foreign course", input: AddLessonInput{TeacherID: "teacher-2", CourseID: "c1", Date: "2024-01-31"}, wantErr: errs.ErrNotFound},
		{name: "duplicate date", input: AddLessonInput{CourseID: "c1", Date: "2024-01-10"}, wantErr: lesson.ErrDuplicateDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := ExecuteAddLesson(context.Background(), tt.input, AddLessonDeps{CourseStore: f.courses, LessonStore: f.lessons})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(f.lessons.lessons) != 3 {
				t.Errorf("no lesson should be added, have %d", len(f.lessons.lessons))
			}
		})
	}
}

func TestDeleteLesson(t *testing.T) {
	f := newFixture()
	deps := DeleteLessonDeps{CourseStore: f.courses, LessonStore: f.lessons}

	if err := ExecuteDeleteLesson(context.Background(), DeleteLessonInput{TeacherID: "teacher-2", LessonID: "L2"}, deps); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("foreign teacher: expected not found, got %v", err)
	}
	if err := ExecuteDeleteLesson(context.Background(), DeleteLessonInput{TeacherID: "teacher-1", LessonID: "L2"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.lessons.GetByID(context.Background(), "L2"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("L2 should be gone, got %v", err)
	}

	// L3 becomes L1's successor.
	res, err := ExecuteSaveLessonPlan(context.Background(), SaveLessonPlanInput{LessonID: "L1", Plan: lesson.Plan{PlanNext: "after delete"}}, f.planDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Next == nil || res.Next.ID != "L3" || res.Next.PlanToday != "after delete" {
		t.Errorf("unexpected successor %+v", res.Next)
	}
}
