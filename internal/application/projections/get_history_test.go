package projections

import (
	"context"
	"testing"
	"time"

	"climbge/internal/domain/grade"
	"climbge/internal/domain/session"
)

func TestQueryGetHistoryAggregates(t *testing.T) {
	today := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	pinToday(t, today)

	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(today, "Boulder Planet",
			route(2, "V4", 1, true),  // flash
			route(2, "V5", 3, true),  // sent, not a flash
			route(2, "V6", 2, false), // attempted only
		),
	}}

	history, err := QueryGetHistory(context.Background(), "u1",
		GetHistoryDeps{SessionStore: store, GradeStore: &mockGradeStore{systems: []grade.System{vScale()}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}

	e := history[0]
	if e.Sent != 2 || e.Flashes != 1 {
		t.Errorf("sent/flashes = %d/%d, want 2/1", e.Sent, e.Flashes)
	}
	if e.Attempted == nil || *e.Attempted != 6 {
		t.Errorf("attempted = %v, want 6", e.Attempted)
	}
	if e.Best != "V5" {
		t.Errorf("best = %q, want V5", e.Best)
	}
	if e.SentPct != "33.33%" {
		t.Errorf("sentPct = %q, want 33.33%%", e.SentPct)
	}
	if e.ClimbDay != "Today" {
		t.Errorf("climbDay = %q, want Today", e.ClimbDay)
	}
	if e.Location != "Boulder Planet" {
		t.Errorf("location = %q", e.Location)
	}
}

func TestQueryGetHistoryPlaceholders(t *testing.T) {
	today := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	pinToday(t, today)

	// A session with no routes renders the placeholders.
	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(today.AddDate(0, 0, -1), "Ford's Rock"),
	}}

	history, err := QueryGetHistory(context.Background(), "u1",
		GetHistoryDeps{SessionStore: store, GradeStore: &mockGradeStore{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := history[0]
	if e.Sent != 0 || e.Flashes != 0 {
		t.Errorf("expected zero sent/flashes, got %d/%d", e.Sent, e.Flashes)
	}
	if e.Attempted != nil {
		t.Errorf("expected nil attempted, got %v", *e.Attempted)
	}
	if e.Best != "-" {
		t.Errorf("best = %q, want -", e.Best)
	}
	if e.SentPct != "0%" {
		t.Errorf("sentPct = %q, want 0%%", e.SentPct)
	}
	if e.ClimbDay != "Yesterday" {
		t.Errorf("climbDay = %q, want Yesterday", e.ClimbDay)
	}
}

func TestQueryGetHistoryWeekCap(t *testing.T) {
	today := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	pinToday(t, today)

	// 40 days back is 5 weeks, capped at 3 for this view.
	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(today.AddDate(0, 0, -40), "Boulder Planet"),
	}}

	history, err := QueryGetHistory(context.Background(), "u1",
		GetHistoryDeps{SessionStore: store, GradeStore: &mockGradeStore{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history[0].ClimbDay != "3 weeks ago" {
		t.Errorf("climbDay = %q, want \"3 weeks ago\"", history[0].ClimbDay)
	}
}

func TestQueryGetHistorySentPctRounding(t *testing.T) {
	pinToday(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		sent, attempted int
		want            string
	}{
		{1, 2, "50%"},
		{2, 3, "66.67%"},
		{3, 3, "100%"},
		{0, 4, "0%"},
		{0, 0, "0%"},
	}
	for _, tt := range tests {
		if got := formatSentPct(tt.sent, tt.attempted); got != tt.want {
			t.Errorf("formatSentPct(%d, %d) = %q, want %q", tt.sent, tt.attempted, got, tt.want)
		}
	}
}

func TestQueryGetHistoryPreservesOrdering(t *testing.T) {
	today := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	pinToday(t, today)

	// The store already returns newest first; the view must not reorder.
	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(today, "Newest"),
		entryOn(today.AddDate(0, 0, -3), "Middle"),
		entryOn(today.AddDate(0, 0, -9), "Oldest"),
	}}

	history, err := QueryGetHistory(context.Background(), "u1",
		GetHistoryDeps{SessionStore: store, GradeStore: &mockGradeStore{systems: []grade.System{vScale()}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Newest", "Middle", "Oldest"}
	for i, loc := range want {
		if history[i].Location != loc {
			t.Errorf("history[%d].Location = %q, want %q", i, history[i].Location, loc)
		}
	}
}
