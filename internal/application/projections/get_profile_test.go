package projections

import (
	"context"
	"testing"
	"time"

	"climbge/internal/domain/account"
	"climbge/internal/domain/measurement"
)

func TestQueryGetProfile(t *testing.T) {
	pinToday(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))

	height := 70.0
	weight := 155.5
	deps := GetProfileDeps{
		AccountStore: &mockAccountReadStore{account: account.Account{
			ID: "u1", Email: "climber@example.com", StartedClimbing: "2024-06",
		}},
		MeasurementStore: &mockMeasurementReadStore{profile: measurement.Profile{
			UserID: "u1", Unit: measurement.UnitImperial, Height: &height, Weight: &weight,
		}},
	}

	got, err := QueryGetProfile(context.Background(), "u1", deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "climber@example.com" {
		t.Errorf("email = %q", got.Email)
	}
	if got.MonthsClimbing == nil || *got.MonthsClimbing != 24 {
		t.Errorf("monthsClimbing = %v, want 24", got.MonthsClimbing)
	}
	if got.Measurements.HeightDisplay != `5'10"` {
		t.Errorf("height display = %q", got.Measurements.HeightDisplay)
	}
	if got.Measurements.WeightDisplay != "155.5 lb" {
		t.Errorf("weight display = %q", got.Measurements.WeightDisplay)
	}
}

func TestQueryGetProfileNoMeasurements(t *testing.T) {
	pinToday(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))

	deps := GetProfileDeps{
		AccountStore:     &mockAccountReadStore{account: account.Account{ID: "u1", Email: "a@b.com"}},
		MeasurementStore: &mockMeasurementReadStore{missing: true},
	}

	got, err := QueryGetProfile(context.Background(), "u1", deps)
	if err != nil {
		t.Fatalf("missing measurements must not fail the view: %v", err)
	}
	if got.MonthsClimbing != nil {
		t.Errorf("expected nil monthsClimbing, got %v", *got.MonthsClimbing)
	}
	if got.Measurements.HeightDisplay != "" || got.Measurements.WeightDisplay != "" {
		t.Error("expected empty display strings")
	}
	if got.Measurements.Unit != measurement.UnitMetric {
		t.Errorf("expected metric default, got %q", got.Measurements.Unit)
	}
}
