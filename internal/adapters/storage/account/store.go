package account

import (
	"context"

	domain "lessonbook/internal/domain/account"
)

// Store persists teacher accounts.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
}
