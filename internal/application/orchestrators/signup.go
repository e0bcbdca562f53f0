package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"climbge/internal/domain/account"

	"github.com/google/uuid"
)

// AccountStoreForSignup defines the store interface needed by Signup.
type AccountStoreForSignup interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// SignupInput carries input for the signup orchestrator.
// StartedClimbing is an optional "YYYY-MM" month.
type SignupInput struct {
	Email           string
	Password        string
	StartedClimbing string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	AccountStore AccountStoreForSignup
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")

// ExecuteSignup coordinates account creation.
// PRE: Valid email, password >= 8 chars
// POST: Account created with hashed password
// INVARIANT: Email must be unique
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return "", account.ErrEmptyEmail
	}
	if input.Password == "" {
		return "", account.ErrEmptyPassword
	}

	// Check if email already exists
	_, err := deps.AccountStore.GetByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:              uuid.New().String(),
		Email:           email,
		CreatedAt:       time.Now().UTC(),
		StartedClimbing: strings.TrimSpace(input.StartedClimbing),
	}

	// Validate domain rules
	if err := acct.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}

	// Save to store
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "account_created", "email", email)

	return acct.ID, nil
}
