package course

import (
	"context"

	"lessonbook/internal/adapters/storage"
	domain "lessonbook/internal/domain/course"
	"lessonbook/internal/domain/dates"
)

const selectCourse = "SELECT id, title, start_date, end_date, teacher_id FROM course"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new course store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Course by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an ErrNotFound error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Course, error) {
	row := s.db.QueryRowContext(ctx, selectCourse+" WHERE id = ?", id)
	entity, err := scanCourse(row.Scan)
	if err != nil {
		return domain.Course{}, storage.NotFound(err, "course", id)
	}
	return entity, nil
}

// Save persists a Course (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Course) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course (id, title, start_date, end_date, teacher_id) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title=excluded.title, start_date=excluded.start_date, end_date=excluded.end_date`,
		entity.ID,
		entity.Title,
		dates.ISO(entity.StartDate),
		dates.ISO(entity.EndDate),
		entity.TeacherID,
	)
	return err
}

// ListByTeacherID returns the teacher's courses, most recent start first.
// PRE: teacherID is non-empty
// POST: Returns matching courses (empty slice if none)
func (s *SQLiteStore) ListByTeacherID(ctx context.Context, teacherID string) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, selectCourse+" WHERE teacher_id = ? ORDER BY start_date DESC, title", teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Course{}
	for rows.Next() {
		entity, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanCourse(scan func(dest ...any) error) (domain.Course, error) {
	var entity domain.Course
	var start, end string
	if err := scan(&entity.ID, &entity.Title, &start, &end, &entity.TeacherID); err != nil {
		return domain.Course{}, err
	}
	var err error
	if entity.StartDate, err = dates.Parse(start); err != nil {
		return domain.Course{}, err
	}
	if entity.EndDate, err = dates.Parse(end); err != nil {
		return domain.Course{}, err
	}
	return entity, nil
}
