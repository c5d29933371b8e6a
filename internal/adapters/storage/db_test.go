package storage

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	_ "modernc.org/sqlite"

	"lessonbook/internal/domain/errs"
)

// openTestDB creates an in-memory SQLite database for testing.
// One connection only: every new :memory: connection would be a separate database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"account",
	"attendance",
	"course",
	"lesson",
	"participant",
	"schema_version",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("tables = %v, want %v", got, expectedTables)
	}
	for i := range got {
		if got[i] != expectedTables[i] {
			t.Errorf("table[%d] = %s, want %s", i, got[i], expectedTables[i])
		}
	}
}

// TestMigrateDB_Idempotent verifies running migrations twice is a no-op.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("first MigrateDB: %v", err)
	}
	if err := MigrateDB(db); err != nil {
		t.Fatalf("second MigrateDB: %v", err)
	}
	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&rows); err != nil {
		t.Fatalf("count schema_version: %v", err)
	}
	if rows != 1 {
		t.Errorf("schema_version rows = %d, want 1", rows)
	}
}

// TestSchema_AttendanceConstraints verifies the storage-level guards of the ledger.
func TestSchema_AttendanceConstraints(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB: %v", err)
	}
	mustExec := func(q string, args ...any) {
		t.Helper()
		if _, err := db.Exec(q, args...); err != nil {
			t.Fatalf("exec %q: %v", q, err)
		}
	}
	mustExec("INSERT INTO account (id, username, created_at) VALUES ('t1', 'teacher', '2024-01-01T00:00:00Z')")
	mustExec("INSERT INTO course (id, title, start_date, end_date, teacher_id) VALUES ('c1', 'C', '2024-01-01', '2024-02-01', 't1')")
	mustExec("INSERT INTO participant (id, course_id, name, created_at) VALUES ('p1', 'c1', 'Anna', '2024-01-01T00:00:00Z')")
	mustExec("INSERT INTO lesson (id, course_id, date) VALUES ('l1', 'c1', '2024-01-10')")

	_, err := db.Exec("INSERT INTO lesson (id, course_id, date) VALUES ('l2', 'c1', '2024-01-10')")
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation for duplicate lesson date, got %v", err)
	}

	insert := "INSERT INTO attendance (id, lesson_id, participant_id, status, minutes_missed, updated_at) VALUES (?, 'l1', 'p1', ?, ?, '2024-01-10T00:00:00Z')"
	if _, err := db.Exec(insert, "a1", "sick", 0); err == nil {
		t.Error("expected CHECK failure for unknown status")
	}
	if _, err := db.Exec(insert, "a1", "late", -3); err == nil {
		t.Error("expected CHECK failure for negative minutes")
	}
	mustExec(insert, "a1", "late", 5)
	if _, err := db.Exec(insert, "a2", "present", 0); !IsUniqueViolation(err) {
		t.Errorf("expected unique violation for second record of the same pair, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound(sql.ErrNoRows, "lesson", "l1")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected not found kind, got %v", err)
	}
	other := context.Canceled
	if NotFound(other, "lesson", "l1") != other {
		t.Error("non-ErrNoRows errors must pass through")
	}
}
