package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"climbge/internal/adapters/email"
	"climbge/internal/domain/feedback"
)

type mockFeedbackStore struct {
	saved []feedback.Feedback
}

func (m *mockFeedbackStore) Save(_ context.Context, f feedback.Feedback) error {
	m.saved = append(m.saved, f)
	return nil
}

type mockEmailSender struct {
	sent []email.SendRequest
	err  error
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "m1"}, nil
}

func TestExecuteSubmitFeedback(t *testing.T) {
	store := &mockFeedbackStore{}
	sender := &mockEmailSender{}
	err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		UserID:    "u1",
		UserEmail: "climber@example.com",
		Body:      "  love the weekly summary  ",
	}, SubmitFeedbackDeps{FeedbackStore: store, EmailSender: sender, NotifyTo: "ops@climbge.app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved feedback, got %d", len(store.saved))
	}
	if store.saved[0].Body != "love the weekly summary" {
		t.Errorf("body not trimmed: %q", store.saved[0].Body)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.sent))
	}
	if sender.sent[0].ReplyTo != "climber@example.com" {
		t.Errorf("expected reply-to set, got %q", sender.sent[0].ReplyTo)
	}
}

func TestExecuteSubmitFeedbackEmailFailureIsSwallowed(t *testing.T) {
	store := &mockFeedbackStore{}
	sender := &mockEmailSender{err: errors.New("provider down")}
	err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		UserID: "u1",
		Body:   "still works",
	}, SubmitFeedbackDeps{FeedbackStore: store, EmailSender: sender, NotifyTo: "ops@climbge.app"})
	if err != nil {
		t.Fatalf("email failure must not fail the submission: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatal("feedback should still be stored")
	}
}

func TestExecuteSubmitFeedbackValidation(t *testing.T) {
	store := &mockFeedbackStore{}

	err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		UserID: "u1",
		Body:   "   ",
	}, SubmitFeedbackDeps{FeedbackStore: store})
	if !errors.Is(err, feedback.ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}

	err = ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		UserID: "u1",
		Body:   strings.Repeat("x", feedback.MaxBodyLength+1),
	}, SubmitFeedbackDeps{FeedbackStore: store})
	if !errors.Is(err, feedback.ErrBodyTooLong) {
		t.Errorf("expected ErrBodyTooLong, got %v", err)
	}

	if len(store.saved) != 0 {
		t.Error("nothing should be stored on validation failure")
	}
}
