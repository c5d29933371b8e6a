package attendance

import (
	"context"

	"lessonbook/internal/adapters/storage"
	domain "lessonbook/internal/domain/attendance"
)

const selectRecord = "SELECT a.id, a.lesson_id, a.participant_id, a.status, a.minutes_missed, a.note, a.updated_at FROM attendance a"

// upsertRecord keeps the id of an existing row so the record identity survives overwrites.
const upsertRecord = `INSERT INTO attendance (id, lesson_id, participant_id, status, minutes_missed, note, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(lesson_id, participant_id) DO UPDATE SET
	status = excluded.status,
	minutes_missed = excluded.minutes_missed,
	note = excluded.note,
	updated_at = excluded.updated_at`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Upsert creates or overwrites the record for (LessonID, ParticipantID).
// PRE: entity has been validated
// POST: Exactly one record exists for the pair, holding entity's state
// INVARIANT: concurrent upserts of distinct pairs never lose each other
func (s *SQLiteStore) Upsert(ctx context.Context, entity domain.Record) error {
	_, err := s.db.ExecContext(ctx, upsertRecord, upsertArgs(entity)...)
	return err
}

// UpsertBatch upserts all records in one transaction and returns them as stored.
// PRE: every entity has been validated, pairs are distinct
// POST: Either every record is written or none are; returned records carry the row id,
// which is the existing id for a pair that was already recorded
func (s *SQLiteStore) UpsertBatch(ctx context.Context, entities []domain.Record) ([]domain.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stored := make([]domain.Record, 0, len(entities))
	for _, entity := range entities {
		if err := tx.QueryRowContext(ctx, upsertRecord+" RETURNING id", upsertArgs(entity)...).Scan(&entity.ID); err != nil {
			return nil, err
		}
		stored = append(stored, entity)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// GetByKey retrieves the record of one participant for one lesson.
// POST: Returns the entity or an ErrNotFound error
func (s *SQLiteStore) GetByKey(ctx context.Context, key domain.Key) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+" WHERE a.lesson_id = ? AND a.participant_id = ?", key.LessonID, key.ParticipantID)
	entity, err := scanRecord(row.Scan)
	if err != nil {
		return domain.Record{}, storage.NotFound(err, "attendance for participant", key.ParticipantID)
	}
	return entity, nil
}

// ListByLessonID returns every record of a lesson.
// POST: Returns records (empty slice if none)
func (s *SQLiteStore) ListByLessonID(ctx context.Context, lessonID string) ([]domain.Record, error) {
	return s.list(ctx, selectRecord+" WHERE a.lesson_id = ? ORDER BY a.participant_id", lessonID)
}

// ListByCourseID returns every record of every lesson of a course, oldest lesson first.
// POST: Returns records (empty slice if none)
func (s *SQLiteStore) ListByCourseID(ctx context.Context, courseID string) ([]domain.Record, error) {
	return s.list(ctx,
		selectRecord+" JOIN lesson l ON l.id = a.lesson_id WHERE l.course_id = ? ORDER BY l.date, a.participant_id",
		courseID,
	)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Record{}
	for rows.Next() {
		entity, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func upsertArgs(e domain.Record) []any {
	return []any{
		e.ID,
		e.LessonID,
		e.ParticipantID,
		string(e.Status),
		e.MinutesMissed,
		e.Note,
		storage.FormatTime(e.UpdatedAt),
	}
}

func scanRecord(scan func(dest ...any) error) (domain.Record, error) {
	var entity domain.Record
	var status, updatedAt string
	err := scan(
		&entity.ID,
		&entity.LessonID,
		&entity.ParticipantID,
		&status,
		&entity.MinutesMissed,
		&entity.Note,
		&updatedAt,
	)
	if err != nil {
		return domain.Record{}, err
	}
	entity.Status = domain.Status(status)
	if entity.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return domain.Record{}, err
	}
	return entity, nil
}
