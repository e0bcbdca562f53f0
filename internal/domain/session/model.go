package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"climbge/internal/domain/grade"
)

// Validation errors surfaced to the request layer. The HTTP adapter maps
// them to 400s with errors.Is; anything else is an opaque 500.
var (
	ErrInvalidInput     = errors.New("missing session start or end time")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidTimeRange = errors.New("ended_at is before started_at")
)

// Session is one climbing outing. Sessions are append-only: once committed
// they are never updated or deleted.
type Session struct {
	ID        string
	UserID    string
	StartedAt time.Time
	EndedAt   time.Time
	Notes     string
	Location  string
	CreatedAt time.Time
}

// Validate checks if the Session has valid data.
// PRE: Session struct is populated with parsed timestamps
// POST: Returns nil if valid, error otherwise
// INVARIANT: EndedAt >= StartedAt
func (s *Session) Validate() error {
	if s.UserID == "" {
		return errors.New("session must belong to a user")
	}
	if s.StartedAt.IsZero() || s.EndedAt.IsZero() {
		return ErrInvalidInput
	}
	if s.EndedAt.Before(s.StartedAt) {
		return ErrInvalidTimeRange
	}
	return nil
}

// RouteAttempt is a single logged climb within a session.
type RouteAttempt struct {
	ID         string
	SessionID  string
	System     grade.SystemRef
	GradeLabel string
	Attempts   int
	Sent       bool
	SentAt     time.Time
}

// Flashed reports whether the route was sent on the first attempt.
func (r RouteAttempt) Flashed() bool {
	return r.Sent && r.Attempts == 1
}

// NormalizeRoute trims the grade label and clamps the attempt count to a
// minimum of 1. Routes with a blank label are dropped, not rejected: the
// second return value reports whether the route should be kept.
func NormalizeRoute(r RouteAttempt) (RouteAttempt, bool) {
	label := strings.TrimSpace(r.GradeLabel)
	if label == "" {
		return RouteAttempt{}, false
	}
	r.GradeLabel = label
	if r.Attempts < 1 {
		r.Attempts = 1
	}
	return r, true
}

// Entry pairs a session with its routes for the read paths.
type Entry struct {
	Session Session
	Routes  []RouteAttempt
}

// timestampLayouts accepts the ISO-8601 shapes clients send: an explicit
// offset, a trailing Z, or a naive local stamp (assumed UTC).
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a client-supplied ISO-8601 timestamp into UTC.
// A stamp without an offset is assumed to already be UTC.
func ParseTimestamp(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
