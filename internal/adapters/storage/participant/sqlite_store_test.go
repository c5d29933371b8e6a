package participant

import (
	"context"
	"errors"
	"testing"
	"time"

	"lessonbook/internal/adapters/storage/storagetest"
	"lessonbook/internal/domain/errs"
	domain "lessonbook/internal/domain/participant"
)

func TestSQLiteStore_ListKeepsInsertionOrder(t *testing.T) {
	db := storagetest.Open(t)
	storagetest.SeedCourse(t, db, "t1", "c1")
	storagetest.SeedCourse(t, db, "t1", "c2")
	store := NewSQLiteStore(db)
	ctx := context.Background()
	now := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	// IDs sort differently from insertion order on purpose.
	for _, p := range []domain.Participant{
		{ID: "z", CourseID: "c1", Name: "Zoe", CreatedAt: now},
		{ID: "a", CourseID: "c1", Name: "Anna", Contact: "anna@example.com", CreatedAt: now},
		{ID: "m", CourseID: "c2", Name: "Max", CreatedAt: now},
	} {
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save %s: %v", p.ID, err)
		}
	}

	list, err := store.ListByCourseID(ctx, "c1")
	if err != nil {
		t.Fatalf("ListByCourseID: %v", err)
	}
	if len(list) != 2 || list[0].ID != "z" || list[1].ID != "a" {
		t.Fatalf("expected [z a], got %+v", list)
	}
	if list[1].Contact != "anna@example.com" || !list[1].CreatedAt.Equal(now) {
		t.Errorf("fields not round-tripped: %+v", list[1])
	}

	empty, err := store.ListByCourseID(ctx, "c3")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v (%v)", empty, err)
	}
}

func TestSQLiteStore_SaveBatch_AllOrNothing(t *testing.T) {
	db := storagetest.Open(t)
	storagetest.SeedCourse(t, db, "t1", "c1")
	store := NewSQLiteStore(db)
	ctx := context.Background()

	err := store.SaveBatch(ctx, []domain.Participant{
		{ID: "p1", CourseID: "c1", Name: "Anna", CreatedAt: time.Now()},
		{ID: "p2", CourseID: "missing-course", Name: "Ben", CreatedAt: time.Now()},
	})
	if err == nil {
		t.Fatal("expected foreign key failure")
	}
	list, _ := store.ListByCourseID(ctx, "c1")
	if len(list) != 0 {
		t.Errorf("partial batch persisted: %+v", list)
	}

	if err := store.SaveBatch(ctx, []domain.Participant{
		{ID: "p1", CourseID: "c1", Name: "Anna", CreatedAt: time.Now()},
		{ID: "p2", CourseID: "c1", Name: "Ben", CreatedAt: time.Now()},
	}); err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	list, _ = store.ListByCourseID(ctx, "c1")
	if len(list) != 2 || list[0].Name != "Anna" || list[1].Name != "Ben" {
		t.Errorf("unexpected registry: %+v", list)
	}
}

func TestSQLiteStore_GetByID(t *testing.T) {
	db := storagetest.Open(t)
	storagetest.SeedCourse(t, db, "t1", "c1")
	storagetest.SeedParticipant(t, db, "c1", "p1")
	store := NewSQLiteStore(db)

	got, err := store.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CourseID != "c1" {
		t.Errorf("CourseID = %q, want c1", got.CourseID)
	}
	if _, err := store.GetByID(context.Background(), "nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
