package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"climbge/internal/adapters/email"
	"climbge/internal/domain/feedback"

	"github.com/google/uuid"
)

// FeedbackStoreForSubmit defines the store interface needed by SubmitFeedback.
type FeedbackStoreForSubmit interface {
	Save(ctx context.Context, f feedback.Feedback) error
}

// SubmitFeedbackInput carries input for the submit-feedback orchestrator.
type SubmitFeedbackInput struct {
	UserID    string
	UserEmail string
	Body      string
}

// SubmitFeedbackDeps holds dependencies for SubmitFeedback. NotifyTo may be
// empty, in which case no notification email is attempted.
type SubmitFeedbackDeps struct {
	FeedbackStore FeedbackStoreForSubmit
	EmailSender   email.Sender
	NotifyTo      string
}

// ExecuteSubmitFeedback records a feedback submission and notifies the
// operator by email. The email is best effort: a delivery failure is logged
// but never surfaced to the submitter, since the feedback itself is already
// stored.
func ExecuteSubmitFeedback(ctx context.Context, input SubmitFeedbackInput, deps SubmitFeedbackDeps) error {
	if input.UserID == "" {
		return errors.New("feedback must belong to an authenticated user")
	}

	f := feedback.Feedback{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Body:      strings.TrimSpace(input.Body),
		CreatedAt: time.Now().UTC(),
	}
	if err := f.Validate(); err != nil {
		return err
	}

	if err := deps.FeedbackStore.Save(ctx, f); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	slog.Info("feedback_event", "event", "feedback_submitted", "user_id", input.UserID)

	if deps.EmailSender != nil && deps.NotifyTo != "" {
		body := fmt.Sprintf("<p>New feedback from %s:</p><p>%s</p>",
			html.EscapeString(input.UserEmail), html.EscapeString(f.Body))
		_, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{deps.NotifyTo},
			Subject: "New climbge feedback",
			HTML:    body,
			ReplyTo: input.UserEmail,
		})
		if err != nil {
			slog.Error("feedback_event", "event", "notify_failed", "error", err.Error())
		}
	}

	return nil
}
