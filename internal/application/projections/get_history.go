package projections

import (
	"context"

	"climbge/internal/application/timeutil"
)

// historyWeekCap bounds relative-day labels in the history view at
// "3 weeks ago".
const historyWeekCap = 3

// HistoryEntry is one session rendered for the history view. Attempted is
// nil when the session has no routes; the request layer renders nil as the
// "-" placeholder.
type HistoryEntry struct {
	Sent      int
	Attempted *int
	Flashes   int
	Best      string // "-" when no route was sent
	SentPct   string
	ClimbDay  string
	Location  string
}

// GetHistoryDeps holds dependencies for the history projection.
type GetHistoryDeps struct {
	SessionStore SessionReadStore
	GradeStore   GradeCatalogStore
}

// QueryGetHistory returns every session for the user, most recent first,
// each rendered with its aggregates and a relative-day label.
// POST: One entry per committed session, ordering matches the store's
func QueryGetHistory(ctx context.Context, userID string, deps GetHistoryDeps) ([]HistoryEntry, error) {
	entries, err := deps.SessionStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	systems, err := deps.GradeStore.ListSystems(ctx)
	if err != nil {
		return nil, err
	}
	catalog := catalogByID(systems)
	today := timeNow()

	history := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		stats := aggregateRoutes(e.Routes, catalog)

		entry := HistoryEntry{
			Sent:     stats.Sent,
			Flashes:  stats.Flashes,
			Best:     stats.Best,
			SentPct:  formatSentPct(stats.Sent, stats.Attempted),
			ClimbDay: timeutil.RelativeDay(today, e.Session.StartedAt, historyWeekCap),
			Location: e.Session.Location,
		}
		if len(e.Routes) > 0 {
			attempted := stats.Attempted
			entry.Attempted = &attempted
		}
		if entry.Best == "" {
			entry.Best = "-"
		}
		history = append(history, entry)
	}
	return history, nil
}
