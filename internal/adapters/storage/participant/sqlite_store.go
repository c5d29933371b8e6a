package participant

import (
	"context"

	"lessonbook/internal/adapters/storage"
	domain "lessonbook/internal/domain/participant"
)

const (
	selectParticipant = "SELECT id, course_id, name, contact, created_at FROM participant"
	insertParticipant = "INSERT INTO participant (id, course_id, name, contact, created_at) VALUES (?, ?, ?, ?, ?)"
)

// SQLiteStore implements Store using SQLite.
// Insertion order is kept by the autoincrement seq column.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new participant store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Participant by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an ErrNotFound error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, selectParticipant+" WHERE id = ?", id)
	entity, err := scanParticipant(row.Scan)
	if err != nil {
		return domain.Participant{}, storage.NotFound(err, "participant", id)
	}
	return entity, nil
}

// Save inserts a new Participant.
// PRE: entity has been validated, its course exists
// POST: Entity is appended to the course's registry
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Participant) error {
	_, err := s.db.ExecContext(ctx, insertParticipant,
		entity.ID, entity.CourseID, entity.Name, entity.Contact, storage.FormatTime(entity.CreatedAt))
	return err
}

// SaveBatch inserts all participants in one transaction.
// PRE: every entity has been validated
// POST: Either all entities are persisted in slice order or none are
func (s *SQLiteStore) SaveBatch(ctx context.Context, entities []domain.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entity := range entities {
		if _, err := tx.ExecContext(ctx, insertParticipant,
			entity.ID, entity.CourseID, entity.Name, entity.Contact, storage.FormatTime(entity.CreatedAt)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListByCourseID returns the course's participants in insertion order.
// PRE: courseID is non-empty
// POST: Returns participants (empty slice if none)
func (s *SQLiteStore) ListByCourseID(ctx context.Context, courseID string) ([]domain.Participant, error) {
	rows, err := s.db.QueryContext(ctx, selectParticipant+" WHERE course_id = ? ORDER BY seq", courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Participant{}
	for rows.Next() {
		entity, err := scanParticipant(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanParticipant(scan func(dest ...any) error) (domain.Participant, error) {
	var entity domain.Participant
	var createdAt string
	if err := scan(&entity.ID, &entity.CourseID, &entity.Name, &entity.Contact, &createdAt); err != nil {
		return domain.Participant{}, err
	}
	var err error
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Participant{}, err
	}
	return entity, nil
}
