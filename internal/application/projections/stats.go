package projections

import (
	"strconv"
	"strings"

	"climbge/internal/domain/grade"
	"climbge/internal/domain/session"
)

// sessionStats are the per-session aggregates the views share.
type sessionStats struct {
	Sent      int
	Attempted int // sum of attempt counts across routes
	Flashes   int
	Best      string // empty when no sent route has a grade
}

// aggregateRoutes computes one session's totals. Best is the sent route
// whose label ranks highest within its own grade system; labels the
// catalog can't rank lose to ranked ones but still win over nothing.
func aggregateRoutes(routes []session.RouteAttempt, catalog map[int]grade.System) sessionStats {
	var stats sessionStats
	bestRank := -1
	for _, r := range routes {
		stats.Attempted += r.Attempts
		if !r.Sent {
			continue
		}
		stats.Sent++
		if r.Flashed() {
			stats.Flashes++
		}

		rank := -1
		if sys, ok := catalog[r.System.ID]; ok {
			rank = sys.Rank(r.GradeLabel)
		}
		if stats.Best == "" || rank > bestRank {
			stats.Best = r.GradeLabel
			bestRank = rank
		}
	}
	return stats
}

// formatSentPct renders sent/attempted as a percentage with up to two
// decimals and no trailing zeros (e.g. "66.67%", "50%"). Zero attempts
// renders as "0%".
func formatSentPct(sent, attempted int) string {
	if attempted <= 0 {
		return "0%"
	}
	pct := float64(sent) / float64(attempted) * 100
	s := strconv.FormatFloat(pct, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}

// catalogByID indexes the grade catalog for rank lookups.
func catalogByID(systems []grade.System) map[int]grade.System {
	m := make(map[int]grade.System, len(systems))
	for _, s := range systems {
		m[s.ID] = s
	}
	return m
}
