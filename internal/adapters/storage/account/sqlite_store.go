package account

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lessonbook/internal/adapters/storage"
	domain "lessonbook/internal/domain/account"
)

const selectAccount = "SELECT id, username, password_hash, created_at, failed_logins, locked_until FROM account"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an ErrNotFound error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, selectAccount+" WHERE id = ?", id)
	entity, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, storage.NotFound(err, "account", id)
	}
	return entity, nil
}

// GetByUsername retrieves an Account by username. Matching is case-insensitive.
// PRE: username is non-empty
// POST: Returns the entity or an ErrNotFound error
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, selectAccount+" WHERE username = ? COLLATE NOCASE", username)
	entity, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, storage.NotFound(err, "account", username)
	}
	return entity, nil
}

// Save persists an Account (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted; a taken username yields domain.ErrUsernameTaken
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	fields := []string{"id", "username", "password_hash", "created_at", "failed_logins", "locked_until"}
	updates := []string{
		"username=excluded.username",
		"password_hash=excluded.password_hash",
		"failed_logins=excluded.failed_logins",
		"locked_until=excluded.locked_until",
	}
	query := fmt.Sprintf(
		"INSERT INTO account (%s) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Username,
		entity.PasswordHash,
		storage.FormatTime(entity.CreatedAt),
		entity.FailedLogins,
		storage.FormatTime(entity.LockedUntil),
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	return err
}

// scanAccount extracts an Account from a row scanner function.
func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var entity domain.Account
	var createdAt, lockedUntil sql.NullString
	err := scan(
		&entity.ID,
		&entity.Username,
		&entity.PasswordHash,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.Account{}, err
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt.String); err != nil {
		return domain.Account{}, err
	}
	if entity.LockedUntil, err = storage.ParseTime(lockedUntil.String); err != nil {
		return domain.Account{}, err
	}
	return entity, nil
}
