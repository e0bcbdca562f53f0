package projections

import (
	"context"
	"errors"
	"fmt"

	"climbge/internal/adapters/storage/measurement"
	"climbge/internal/application/timeutil"
	domain "climbge/internal/domain/measurement"
)

// Profile is the profile view: identity, tenure and formatted measurements.
// MonthsClimbing is nil when the climber never set a start month.
type Profile struct {
	Email          string
	MonthsClimbing *int
	Measurements   domain.Display
}

// GetProfileDeps holds dependencies for the profile projection.
type GetProfileDeps struct {
	AccountStore     AccountReadStore
	MeasurementStore MeasurementReadStore
}

// QueryGetProfile assembles the profile view for one user. A user with no
// stored measurements still gets a profile; the display fields just stay
// empty.
func QueryGetProfile(ctx context.Context, userID string, deps GetProfileDeps) (Profile, error) {
	acct, err := deps.AccountStore.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to load account: %w", err)
	}

	p := Profile{Email: acct.Email}

	if start := acct.StartedClimbingMonth(); !start.IsZero() {
		months := timeutil.MonthsSince(timeNow(), start)
		p.MonthsClimbing = &months
	}

	stored, err := deps.MeasurementStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, measurement.ErrNotFound) {
			p.Measurements = domain.Profile{}.FormatForDisplay()
			return p, nil
		}
		return Profile{}, err
	}
	p.Measurements = stored.FormatForDisplay()
	return p, nil
}
