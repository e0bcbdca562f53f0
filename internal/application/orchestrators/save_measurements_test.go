package orchestrators

import (
	"context"
	"errors"
	"testing"

	"climbge/internal/domain/measurement"
)

type mockMeasurementStore struct {
	saved measurement.Profile
	calls int
}

func (m *mockMeasurementStore) Save(_ context.Context, patch measurement.Profile) (measurement.Profile, error) {
	m.calls++
	m.saved = patch
	return patch, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestExecuteSaveMeasurementsMetric(t *testing.T) {
	store := &mockMeasurementStore{}
	saved, err := ExecuteSaveMeasurements(context.Background(), SaveMeasurementsInput{
		UserID: "u1",
		Unit:   " Metric ",
		Height: floatPtr(180),
		Weight: floatPtr(72.5),
	}, SaveMeasurementsDeps{MeasurementStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Unit != measurement.UnitMetric {
		t.Errorf("unit not normalized: %q", saved.Unit)
	}
	if store.saved.Height == nil || *store.saved.Height != 180 {
		t.Error("height not passed through")
	}
}

func TestExecuteSaveMeasurementsImperialHeightPair(t *testing.T) {
	store := &mockMeasurementStore{}
	saved, err := ExecuteSaveMeasurements(context.Background(), SaveMeasurementsInput{
		UserID:       "u1",
		Unit:         "imperial",
		HeightFeet:   intPtr(5),
		HeightInches: intPtr(10),
	}, SaveMeasurementsDeps{MeasurementStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Height == nil || *saved.Height != 70 {
		t.Fatalf("expected 70 total inches, got %v", saved.Height)
	}
}

func TestExecuteSaveMeasurementsImperialBadInches(t *testing.T) {
	store := &mockMeasurementStore{}
	_, err := ExecuteSaveMeasurements(context.Background(), SaveMeasurementsInput{
		UserID:       "u1",
		Unit:         "imperial",
		HeightFeet:   intPtr(5),
		HeightInches: intPtr(12),
	}, SaveMeasurementsDeps{MeasurementStore: store})
	if !errors.Is(err, measurement.ErrInchesOutOfRange) {
		t.Errorf("expected ErrInchesOutOfRange, got %v", err)
	}
	if store.calls != 0 {
		t.Error("store must not be called on validation failure")
	}
}

func TestExecuteSaveMeasurementsBadUnit(t *testing.T) {
	store := &mockMeasurementStore{}
	_, err := ExecuteSaveMeasurements(context.Background(), SaveMeasurementsInput{
		UserID: "u1",
		Unit:   "furlongs",
	}, SaveMeasurementsDeps{MeasurementStore: store})
	if !errors.Is(err, measurement.ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit, got %v", err)
	}
}
