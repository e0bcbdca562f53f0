package projections

import (
	"context"
	"testing"
	"time"

	storageMeasurement "climbge/internal/adapters/storage/measurement"
	"climbge/internal/domain/account"
	"climbge/internal/domain/grade"
	"climbge/internal/domain/measurement"
	"climbge/internal/domain/session"
)

type mockSessionReadStore struct {
	entries []session.Entry
	err     error
}

func (m *mockSessionReadStore) ListByUserID(_ context.Context, _ string) ([]session.Entry, error) {
	return m.entries, m.err
}

type mockGradeStore struct {
	systems []grade.System
	unknown []grade.UnknownRecord
}

func (m *mockGradeStore) ListSystems(_ context.Context) ([]grade.System, error) {
	return m.systems, nil
}

func (m *mockGradeStore) ListUnknown(_ context.Context) ([]grade.UnknownRecord, error) {
	return m.unknown, nil
}

type mockAccountReadStore struct {
	account account.Account
	err     error
}

func (m *mockAccountReadStore) GetByID(_ context.Context, _ string) (account.Account, error) {
	return m.account, m.err
}

type mockMeasurementReadStore struct {
	profile measurement.Profile
	missing bool
}

func (m *mockMeasurementReadStore) GetByUserID(_ context.Context, _ string) (measurement.Profile, error) {
	if m.missing {
		return measurement.Profile{}, storageMeasurement.ErrNotFound
	}
	return m.profile, nil
}

// pinToday fixes the projection clock for the duration of a test.
func pinToday(t *testing.T, today time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return today }
	t.Cleanup(func() { timeNow = orig })
}

func vScale() grade.System {
	return grade.System{ID: 2, Label: "V-Scale", Grades: []string{"V0", "V1", "V2", "V3", "V4", "V5", "V6"}}
}

func route(systemID int, label string, attempts int, sent bool) session.RouteAttempt {
	return session.RouteAttempt{
		System:     grade.SystemRef{ID: systemID, Label: "V-Scale"},
		GradeLabel: label,
		Attempts:   attempts,
		Sent:       sent,
	}
}

func entryOn(started time.Time, location string, routes ...session.RouteAttempt) session.Entry {
	return session.Entry{
		Session: session.Session{
			ID:        "s-" + started.Format("20060102T150405"),
			UserID:    "u1",
			StartedAt: started,
			EndedAt:   started.Add(2 * time.Hour),
			Location:  location,
		},
		Routes: routes,
	}
}
