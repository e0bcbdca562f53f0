package projections

import (
	"context"
	"time"

	domainAccount "climbge/internal/domain/account"
	domainGrade "climbge/internal/domain/grade"
	domainMeasurement "climbge/internal/domain/measurement"
	domainSession "climbge/internal/domain/session"
)

// SessionReadStore interface for session queries.
type SessionReadStore interface {
	ListByUserID(ctx context.Context, userID string) ([]domainSession.Entry, error)
}

// GradeCatalogStore interface for grade catalog queries.
type GradeCatalogStore interface {
	ListSystems(ctx context.Context) ([]domainGrade.System, error)
}

// UnknownGradeStore interface for the unknown-system log.
type UnknownGradeStore interface {
	ListUnknown(ctx context.Context) ([]domainGrade.UnknownRecord, error)
}

// MeasurementReadStore interface for measurement queries.
type MeasurementReadStore interface {
	GetByUserID(ctx context.Context, userID string) (domainMeasurement.Profile, error)
}

// AccountReadStore interface for account queries.
type AccountReadStore interface {
	GetByID(ctx context.Context, id string) (domainAccount.Account, error)
}

// timeNow is swapped out in tests to pin "today".
var timeNow = time.Now
