package session

import (
	"errors"
	"testing"
	"time"
)

// TestSessionValidate_TimeRange verifies the end-after-start invariant.
func TestSessionValidate_TimeRange(t *testing.T) {
	start := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	s := Session{ID: "s1", UserID: "u1", StartedAt: start, EndedAt: start.Add(2 * time.Hour)}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.EndedAt = start.Add(-time.Minute)
	if err := s.Validate(); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange, got %v", err)
	}
}

// TestSessionValidate_EqualTimesAllowed verifies end == start is accepted.
func TestSessionValidate_EqualTimesAllowed(t *testing.T) {
	start := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)
	s := Session{ID: "s1", UserID: "u1", StartedAt: start, EndedAt: start}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestSessionValidate_MissingTimestamps verifies zero timestamps are rejected.
func TestSessionValidate_MissingTimestamps(t *testing.T) {
	s := Session{ID: "s1", UserID: "u1", EndedAt: time.Now()}
	if err := s.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// TestNormalizeRoute_BlankLabelDropped verifies blank grade labels skip the route.
func TestNormalizeRoute_BlankLabelDropped(t *testing.T) {
	for _, label := range []string{"", "   ", "\t\n"} {
		if _, keep := NormalizeRoute(RouteAttempt{GradeLabel: label, Attempts: 3}); keep {
			t.Errorf("route with label %q must be dropped", label)
		}
	}
}

// TestNormalizeRoute_ClampsAttempts verifies attempts are clamped to >= 1.
func TestNormalizeRoute_ClampsAttempts(t *testing.T) {
	for _, attempts := range []int{-4, 0, 1} {
		r, keep := NormalizeRoute(RouteAttempt{GradeLabel: "V4", Attempts: attempts})
		if !keep {
			t.Fatalf("route with attempts=%d must be kept", attempts)
		}
		if r.Attempts < 1 {
			t.Errorf("attempts=%d not clamped, got %d", attempts, r.Attempts)
		}
	}

	r, _ := NormalizeRoute(RouteAttempt{GradeLabel: "V4", Attempts: 5})
	if r.Attempts != 5 {
		t.Errorf("valid attempt count must pass through, got %d", r.Attempts)
	}
}

// TestNormalizeRoute_TrimsLabel verifies surrounding whitespace is removed.
func TestNormalizeRoute_TrimsLabel(t *testing.T) {
	r, keep := NormalizeRoute(RouteAttempt{GradeLabel: "  6a+ ", Attempts: 1})
	if !keep || r.GradeLabel != "6a+" {
		t.Errorf("expected trimmed label 6a+, got %q (keep=%v)", r.GradeLabel, keep)
	}
}

// TestRouteAttemptFlashed verifies the flash rule: sent on the first attempt.
func TestRouteAttemptFlashed(t *testing.T) {
	if !(RouteAttempt{Sent: true, Attempts: 1}).Flashed() {
		t.Error("sent with 1 attempt is a flash")
	}
	if (RouteAttempt{Sent: true, Attempts: 2}).Flashed() {
		t.Error("sent with 2 attempts is not a flash")
	}
	if (RouteAttempt{Sent: false, Attempts: 1}).Flashed() {
		t.Error("unsent route is not a flash")
	}
}

// TestParseTimestamp covers the accepted ISO-8601 shapes.
func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-10T18:30:00Z", time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC)},
		{"2024-06-10T18:30:00+02:00", time.Date(2024, 6, 10, 16, 30, 0, 0, time.UTC)},
		{"2024-06-10T18:30:00", time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC)}, // naive => UTC
		{"2024-06-10 18:30:00", time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC)},
		{"2024-06-10", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): unexpected error %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseTimestamp(%q) not normalized to UTC", tc.in)
		}
	}
}

// TestParseTimestamp_Invalid verifies unparseable values fail with the sentinel.
func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "last tuesday", "10/06/2024"} {
		if _, err := ParseTimestamp(in); !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("ParseTimestamp(%q): expected ErrInvalidTimestamp, got %v", in, err)
		}
	}
}
