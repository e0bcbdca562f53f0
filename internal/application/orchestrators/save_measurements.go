package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"climbge/internal/domain/measurement"
)

// MeasurementStoreForSave defines the store interface needed by SaveMeasurements.
type MeasurementStoreForSave interface {
	Save(ctx context.Context, patch measurement.Profile) (measurement.Profile, error)
}

// SaveMeasurementsInput carries a partial measurement update. Nil fields were
// omitted by the client and must leave the stored values untouched. Imperial
// heights arrive as a feet/inches pair; metric heights use Height directly.
type SaveMeasurementsInput struct {
	UserID       string
	Unit         string
	Height       *float64
	HeightFeet   *int
	HeightInches *int
	Weight       *float64
	ApeIndex     *float64
	GripStrength *float64
}

// SaveMeasurementsDeps holds dependencies for SaveMeasurements.
type SaveMeasurementsDeps struct {
	MeasurementStore MeasurementStoreForSave
}

// ExecuteSaveMeasurements normalizes and upserts a user's measurement
// profile.
// POST: Returns the merged profile as stored.
func ExecuteSaveMeasurements(ctx context.Context, input SaveMeasurementsInput, deps SaveMeasurementsDeps) (measurement.Profile, error) {
	if input.UserID == "" {
		return measurement.Profile{}, errors.New("measurements must belong to an authenticated user")
	}

	patch := measurement.Profile{
		UserID:       input.UserID,
		Unit:         strings.ToLower(strings.TrimSpace(input.Unit)),
		Height:       input.Height,
		Weight:       input.Weight,
		ApeIndex:     input.ApeIndex,
		GripStrength: input.GripStrength,
	}

	if patch.Unit == measurement.UnitImperial && patch.Height == nil {
		h, err := measurement.FeetInchesToTotalInches(input.HeightFeet, input.HeightInches)
		if err != nil {
			return measurement.Profile{}, err
		}
		patch.Height = h
	}

	if err := patch.Validate(); err != nil {
		return measurement.Profile{}, err
	}

	saved, err := deps.MeasurementStore.Save(ctx, patch)
	if err != nil {
		return measurement.Profile{}, fmt.Errorf("failed to save measurements: %w", err)
	}

	slog.Info("measurement_event", "event", "measurements_saved",
		"user_id", input.UserID, "unit", saved.Unit)

	return saved, nil
}
