// Package storagetest opens migrated in-memory databases for store tests.
package storagetest

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"lessonbook/internal/adapters/storage"
)

// Open returns a migrated in-memory database that is closed with the test.
// The pool is pinned to one connection so every statement sees the same database.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedCourse inserts a teacher account and a course so rows referencing
// courseID satisfy the foreign keys.
func SeedCourse(t *testing.T, db *sql.DB, teacherID, courseID string) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT OR IGNORE INTO account (id, username, created_at) VALUES (?, ?, '2024-01-01T00:00:00Z')",
		teacherID, "user-"+teacherID,
	); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO course (id, title, start_date, end_date, teacher_id) VALUES (?, ?, '2024-01-01', '2024-12-31', ?)",
		courseID, "Course "+courseID, teacherID,
	); err != nil {
		t.Fatalf("seed course: %v", err)
	}
}

// SeedParticipant inserts a participant row.
func SeedParticipant(t *testing.T, db *sql.DB, courseID, participantID string) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT INTO participant (id, course_id, name, created_at) VALUES (?, ?, ?, '2024-01-01T00:00:00Z')",
		participantID, courseID, "Name "+participantID,
	); err != nil {
		t.Fatalf("seed participant: %v", err)
	}
}

// SeedLesson inserts a lesson row with empty plan fields.
func SeedLesson(t *testing.T, db *sql.DB, courseID, lessonID, date string) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT INTO lesson (id, course_id, date) VALUES (?, ?, ?)",
		lessonID, courseID, date,
	); err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
}
