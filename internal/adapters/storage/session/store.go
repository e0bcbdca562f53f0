package session

import (
	"context"
	"errors"

	domain "climbge/internal/domain/session"
)

// ErrNotFound is returned when no session matches the lookup.
var ErrNotFound = errors.New("session not found")

// Store persists climb sessions and their routes.
type Store interface {
	// CommitSession writes the session, its routes, and an unknown-grade
	// log entry per unknown-system route, all inside one transaction.
	// Either every row lands or none do.
	CommitSession(ctx context.Context, s domain.Session, routes []domain.RouteAttempt) error
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	// ListByUserID returns the user's sessions most recent first
	// (started_at descending, insert order descending as tie-break),
	// each paired with its routes.
	ListByUserID(ctx context.Context, userID string) ([]domain.Entry, error)
}
