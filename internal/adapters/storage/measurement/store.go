package measurement

import (
	"context"
	"errors"

	domain "climbge/internal/domain/measurement"
)

// ErrNotFound is returned when a user has no stored measurements.
var ErrNotFound = errors.New("measurements not found")

// Store persists user measurement profiles.
type Store interface {
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	// Save upserts the profile with per-field merge semantics: fields the
	// patch leaves nil keep their stored value. Returns the merged row.
	Save(ctx context.Context, patch domain.Profile) (domain.Profile, error)
}
