package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"climbge/internal/domain/grade"
	"climbge/internal/domain/session"

	"github.com/google/uuid"
)

// SessionStoreForCommit defines the store interface needed by CommitSession.
type SessionStoreForCommit interface {
	CommitSession(ctx context.Context, s session.Session, routes []session.RouteAttempt) error
}

// RouteInput is one submitted route, as it arrives from the client.
// GradeSystem is nil when the client left the system unspecified.
type RouteInput struct {
	GradeSystem      *int
	GradeSystemLabel string
	GradeLabel       string
	Attempts         int
	Sent             bool
	SentAt           string
}

// CommitSessionInput carries input for the commit-session orchestrator.
type CommitSessionInput struct {
	UserID    string
	StartedAt string
	EndedAt   string
	Notes     string
	Location  string
	Routes    []RouteInput
}

// CommitSessionResult carries the new session's identifier.
type CommitSessionResult struct {
	SessionID string
}

// CommitSessionDeps holds dependencies for CommitSession.
type CommitSessionDeps struct {
	SessionStore SessionStoreForCommit
}

// ExecuteCommitSession validates and persists one climbing session plus its
// routes as a single atomic unit.
//
// Validation order: both timestamps present, both parseable, end >= start,
// then per route: blank grade labels skip the route (never an error),
// attempt counts clamp to >= 1, and a malformed sent_at fails the whole
// call. Routes referencing an unknown grade system additionally produce an
// unknown-grade log record inside the same transaction.
// POST: Either the session and every kept route are committed, or nothing is.
func ExecuteCommitSession(ctx context.Context, input CommitSessionInput, deps CommitSessionDeps) (CommitSessionResult, error) {
	if input.UserID == "" {
		return CommitSessionResult{}, errors.New("session must belong to an authenticated user")
	}
	if strings.TrimSpace(input.StartedAt) == "" || strings.TrimSpace(input.EndedAt) == "" {
		return CommitSessionResult{}, session.ErrInvalidInput
	}

	startedAt, err := session.ParseTimestamp(input.StartedAt)
	if err != nil {
		return CommitSessionResult{}, err
	}
	endedAt, err := session.ParseTimestamp(input.EndedAt)
	if err != nil {
		return CommitSessionResult{}, err
	}

	s := session.Session{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Notes:     strings.TrimSpace(input.Notes),
		Location:  strings.TrimSpace(input.Location),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return CommitSessionResult{}, err
	}

	var routes []session.RouteAttempt
	for _, in := range input.Routes {
		r, keep := session.NormalizeRoute(session.RouteAttempt{
			ID:         uuid.New().String(),
			SessionID:  s.ID,
			System:     grade.Resolve(in.GradeSystem, in.GradeSystemLabel),
			GradeLabel: in.GradeLabel,
			Attempts:   in.Attempts,
			Sent:       in.Sent,
		})
		if !keep {
			continue
		}
		if strings.TrimSpace(in.SentAt) != "" {
			sentAt, err := session.ParseTimestamp(in.SentAt)
			if err != nil {
				return CommitSessionResult{}, err
			}
			r.SentAt = sentAt
		}
		routes = append(routes, r)
	}

	if err := deps.SessionStore.CommitSession(ctx, s, routes); err != nil {
		slog.Error("session_event", "event", "commit_failed", "user_id", input.UserID, "error", err.Error())
		return CommitSessionResult{}, fmt.Errorf("failed to commit session: %w", err)
	}

	slog.Info("session_event", "event", "session_committed",
		"session_id", s.ID, "user_id", s.UserID, "routes", len(routes))

	return CommitSessionResult{SessionID: s.ID}, nil
}
