package projections

import (
	"context"
	"errors"
)

// ErrNoSessions is returned when the user has never committed a session.
// The request layer treats it as an empty result rather than a failure.
var ErrNoSessions = errors.New("no sessions recorded")

// LastClimb summarises the user's most recent session.
type LastClimb struct {
	Location       string
	ClimbDate      string // YYYY-MM-DD
	HighestGrade   string
	TotalSent      int
	TotalAttempted int
}

// GetLastClimbDeps holds dependencies for the last-climb projection.
type GetLastClimbDeps struct {
	SessionStore SessionReadStore
	GradeStore   GradeCatalogStore
}

// QueryGetLastClimb returns the single most recent session's summary.
func QueryGetLastClimb(ctx context.Context, userID string, deps GetLastClimbDeps) (LastClimb, error) {
	entries, err := deps.SessionStore.ListByUserID(ctx, userID)
	if err != nil {
		return LastClimb{}, err
	}
	if len(entries) == 0 {
		return LastClimb{}, ErrNoSessions
	}
	systems, err := deps.GradeStore.ListSystems(ctx)
	if err != nil {
		return LastClimb{}, err
	}

	latest := entries[0]
	stats := aggregateRoutes(latest.Routes, catalogByID(systems))
	best := stats.Best
	if best == "" {
		best = "-"
	}

	return LastClimb{
		Location:       latest.Session.Location,
		ClimbDate:      latest.Session.StartedAt.Format("2006-01-02"),
		HighestGrade:   best,
		TotalSent:      stats.Sent,
		TotalAttempted: stats.Attempted,
	}, nil
}
