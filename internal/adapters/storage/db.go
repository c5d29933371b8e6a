package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"lessonbook/internal/domain/errs"
)

// migrations are applied in order; index+1 is the schema version.
// Never edit a released migration, append a new one instead.
var migrations = []string{
	// 1: initial schema
	`
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS course (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		teacher_id TEXT NOT NULL,
		FOREIGN KEY (teacher_id) REFERENCES account(id)
	);
	CREATE INDEX IF NOT EXISTS idx_course_teacher ON course(teacher_id);

	CREATE TABLE IF NOT EXISTS participant (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		course_id TEXT NOT NULL,
		name TEXT NOT NULL,
		contact TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (course_id) REFERENCES course(id)
	);
	CREATE INDEX IF NOT EXISTS idx_participant_course ON participant(course_id);

	CREATE TABLE IF NOT EXISTS lesson (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		date TEXT NOT NULL,
		plan_today TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL DEFAULT '',
		plan_next TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (course_id) REFERENCES course(id),
		UNIQUE (course_id, date)
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		lesson_id TEXT NOT NULL,
		participant_id TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('present', 'absent', 'late', 'left_early')),
		minutes_missed INTEGER NOT NULL DEFAULT 0 CHECK (minutes_missed >= 0),
		note TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		FOREIGN KEY (lesson_id) REFERENCES lesson(id),
		FOREIGN KEY (participant_id) REFERENCES participant(id),
		UNIQUE (lesson_id, participant_id)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_participant ON attendance(participant_id);
	`,
}

// LatestSchemaVersion returns the version the database has after MigrateDB.
func LatestSchemaVersion() int {
	return len(migrations)
}

// MigrateDB brings the schema up to LatestSchemaVersion.
// PRE: db is a valid database connection
// POST: every pending migration is applied, each in its own transaction
func MigrateDB(db *sql.DB) error {
	ctx := context.Background()
	// Enable foreign key enforcement for connections that did not get the DSN pragma
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for v := current + 1; v <= len(migrations); v++ {
		if err := applyMigration(ctx, db, v, migrations[v-1]); err != nil {
			return fmt.Errorf("migration %d: %w", v, err)
		}
		slog.Info("schema_migrated", "version", v)
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, version int, stmt string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion returns the applied schema version, 0 for a fresh database.
func SchemaVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	err := db.QueryRowContext(context.Background(), "SELECT MAX(version) FROM schema_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// IsUniqueViolation reports whether err comes from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// NotFound maps sql.ErrNoRows to an errs.ErrNotFound error naming the entity.
// Any other error is returned unchanged.
func NotFound(err error, entity, id string) error {
	if err == sql.ErrNoRows {
		return errs.NotFound("%s %s", entity, id)
	}
	return err
}
