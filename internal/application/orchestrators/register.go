package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"lessonbook/internal/domain/account"
	"lessonbook/internal/domain/errs"
)

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	GetByUsername(ctx context.Context, username string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Username string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRegister creates a teacher account with a bcrypt-hashed password.
// PRE: Username is unique (case-insensitive); Password has at least account.MinPasswordLength characters
// POST: Account persisted; returns the stored account
// INVARIANT: The plaintext password is never stored or logged
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	acct := account.Account{
		ID:        idGenerator(deps.GenerateID)(),
		Username:  strings.TrimSpace(input.Username),
		CreatedAt: clock(deps.Now)(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}

	if _, err := deps.AccountStore.GetByUsername(ctx, acct.Username); err == nil {
		return account.Account{}, account.ErrUsernameTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "account_registered", "account_id", acct.ID, "username", acct.Username)
	return acct, nil
}
