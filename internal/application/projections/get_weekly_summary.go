package projections

import (
	"context"

	"climbge/internal/application/timeutil"
)

// WeeklySummary counts activity within the current running week.
type WeeklySummary struct {
	TotalSessions  int
	TotalSent      int
	TotalAttempted int
}

// GetWeeklySummaryDeps holds dependencies for the weekly summary projection.
type GetWeeklySummaryDeps struct {
	SessionStore SessionReadStore
}

// QueryGetWeeklySummary totals sessions, sends and attempts for the week
// containing today. Weeks run Monday through Sunday; the counters reset at
// each Monday boundary because only sessions started inside the window count.
func QueryGetWeeklySummary(ctx context.Context, userID string, deps GetWeeklySummaryDeps) (WeeklySummary, error) {
	entries, err := deps.SessionStore.ListByUserID(ctx, userID)
	if err != nil {
		return WeeklySummary{}, err
	}

	weekStart, weekEnd := timeutil.WeekBounds(timeNow())

	var summary WeeklySummary
	for _, e := range entries {
		started := e.Session.StartedAt
		if started.Before(weekStart) || !started.Before(weekEnd) {
			continue
		}
		summary.TotalSessions++
		for _, r := range e.Routes {
			summary.TotalAttempted += r.Attempts
			if r.Sent {
				summary.TotalSent++
			}
		}
	}
	return summary, nil
}
