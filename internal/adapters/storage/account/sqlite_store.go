package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"climbge/internal/adapters/storage"
	domain "climbge/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, password_hash, created_at, failed_logins, locked_until, started_climbing"

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	return scanAccount(row)
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM account WHERE email = ?", email)
	return scanAccount(row)
}

// Save persists an Account (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	var lockedVal, startedVal any
	if !entity.LockedUntil.IsZero() {
		lockedVal = entity.LockedUntil.Format(time.RFC3339Nano)
	}
	if entity.StartedClimbing != "" {
		startedVal = entity.StartedClimbing
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, email, password_hash, created_at, failed_logins, locked_until, started_climbing)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			password_hash=excluded.password_hash,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until,
			started_climbing=excluded.started_climbing`,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.CreatedAt.Format(time.RFC3339Nano),
		entity.FailedLogins,
		lockedVal,
		startedVal,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var entity domain.Account
	var createdStr string
	var locked, started sql.NullString
	err := row.Scan(&entity.ID, &entity.Email, &entity.PasswordHash, &createdStr,
		&entity.FailedLogins, &locked, &started)
	if err == sql.ErrNoRows {
		return domain.Account{}, ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	if entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return domain.Account{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if locked.Valid {
		parsed, parseErr := time.Parse(time.RFC3339Nano, locked.String)
		if parseErr != nil {
			return domain.Account{}, fmt.Errorf("failed to parse locked_until: %w", parseErr)
		}
		entity.LockedUntil = parsed
	}
	if started.Valid {
		entity.StartedClimbing = started.String
	}
	return entity, nil
}

var _ Store = (*SQLiteStore)(nil)
