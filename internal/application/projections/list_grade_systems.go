package projections

import (
	"context"

	"climbge/internal/domain/grade"
)

// ListGradeSystemsDeps holds dependencies for the catalog projection.
type ListGradeSystemsDeps struct {
	GradeStore GradeCatalogStore
}

// QueryListGradeSystems returns the grade catalog ordered by id.
func QueryListGradeSystems(ctx context.Context, deps ListGradeSystemsDeps) ([]grade.System, error) {
	return deps.GradeStore.ListSystems(ctx)
}

// ListUnknownGradesDeps holds dependencies for the unknown-grade log read.
type ListUnknownGradesDeps struct {
	GradeStore UnknownGradeStore
}

// QueryListUnknownGrades returns the unknown-system log, oldest first. This
// is the curation read used to decide which caller-labeled systems deserve
// promotion into the catalog.
func QueryListUnknownGrades(ctx context.Context, deps ListUnknownGradesDeps) ([]grade.UnknownRecord, error) {
	return deps.GradeStore.ListUnknown(ctx)
}
