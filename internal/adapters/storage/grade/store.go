package grade

import (
	"context"

	domain "climbge/internal/domain/grade"
)

// Store persists the grade-system catalog and the unknown-system log.
type Store interface {
	// ListSystems returns the catalog ordered by id.
	ListSystems(ctx context.Context) ([]domain.System, error)
	// SaveSystem inserts a catalog entry, leaving an existing id untouched.
	SaveSystem(ctx context.Context, s domain.System) error
	// ListUnknown returns the unknown-system log, oldest first. The log is
	// written by the session store during commit; this is the curation read.
	ListUnknown(ctx context.Context) ([]domain.UnknownRecord, error)
}
