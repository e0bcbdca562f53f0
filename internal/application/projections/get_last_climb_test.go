package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"climbge/internal/domain/grade"
	"climbge/internal/domain/session"
)

func TestQueryGetLastClimb(t *testing.T) {
	started := time.Date(2026, 6, 8, 19, 0, 0, 0, time.UTC)
	store := &mockSessionReadStore{entries: []session.Entry{
		entryOn(started, "Boulder Planet",
			route(2, "V3", 2, true),
			route(2, "V5", 4, true),
			route(2, "V6", 1, false),
		),
		entryOn(started.AddDate(0, 0, -7), "Older Gym", route(2, "V2", 1, true)),
	}}

	got, err := QueryGetLastClimb(context.Background(), "u1",
		GetLastClimbDeps{SessionStore: store, GradeStore: &mockGradeStore{systems: []grade.System{vScale()}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location != "Boulder Planet" {
		t.Errorf("location = %q", got.Location)
	}
	if got.ClimbDate != "2026-06-08" {
		t.Errorf("climbDate = %q", got.ClimbDate)
	}
	if got.HighestGrade != "V5" {
		t.Errorf("highestGrade = %q, want V5", got.HighestGrade)
	}
	if got.TotalSent != 2 || got.TotalAttempted != 7 {
		t.Errorf("sent/attempted = %d/%d, want 2/7", got.TotalSent, got.TotalAttempted)
	}
}

func TestQueryGetLastClimbNoSessions(t *testing.T) {
	store := &mockSessionReadStore{}
	_, err := QueryGetLastClimb(context.Background(), "u1",
		GetLastClimbDeps{SessionStore: store, GradeStore: &mockGradeStore{}})
	if !errors.Is(err, ErrNoSessions) {
		t.Errorf("expected ErrNoSessions, got %v", err)
	}
}
