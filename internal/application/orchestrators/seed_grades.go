package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"climbge/internal/domain/grade"
)

// GradeStoreForSeed defines the store interface needed by SeedGradeSystems.
type GradeStoreForSeed interface {
	SaveSystem(ctx context.Context, s grade.System) error
}

// SeedGradeSystemsDeps holds dependencies for SeedGradeSystems.
type SeedGradeSystemsDeps struct {
	GradeStore GradeStoreForSeed
}

// ExecuteSeedGradeSystems installs the built-in grade catalog. Safe to run
// on every startup: existing ids are left untouched.
// POST: Every catalog system exists in the store
func ExecuteSeedGradeSystems(ctx context.Context, deps SeedGradeSystemsDeps) error {
	for _, s := range grade.DefaultCatalog() {
		if err := deps.GradeStore.SaveSystem(ctx, s); err != nil {
			return fmt.Errorf("failed to seed grade system %d: %w", s.ID, err)
		}
	}
	slog.Info("grade_event", "event", "catalog_seeded", "systems", len(grade.DefaultCatalog()))
	return nil
}
