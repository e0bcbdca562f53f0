package projections

import (
	"context"
	"testing"
	"time"

	"climbge/internal/domain/session"
)

func TestQueryGetWeeklySummary(t *testing.T) {
	// Wednesday; the running week is Mon 8 June through Sun 14 June.
	today := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	pinToday(t, today)

	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC), "A",
			route(2, "V3", 2, true), route(2, "V4", 3, false)),
		entryOn(time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC), "B", // Monday boundary, included
			route(2, "V2", 1, true)),
		entryOn(time.Date(2026, 6, 7, 23, 0, 0, 0, time.UTC), "C", // previous week
			route(2, "V5", 5, true)),
	}}

	got, err := QueryGetWeeklySummary(context.Background(), "u1",
		GetWeeklySummaryDeps{SessionStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalSessions != 2 {
		t.Errorf("totalSessions = %d, want 2", got.TotalSessions)
	}
	if got.TotalSent != 2 {
		t.Errorf("totalSent = %d, want 2", got.TotalSent)
	}
	if got.TotalAttempted != 6 {
		t.Errorf("totalAttempted = %d, want 6", got.TotalAttempted)
	}
}

func TestQueryGetWeeklySummaryEmptyWeek(t *testing.T) {
	pinToday(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))

	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC), "Old"),
	}}

	got, err := QueryGetWeeklySummary(context.Background(), "u1",
		GetWeeklySummaryDeps{SessionStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (WeeklySummary{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}
}
