package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"climbge/internal/adapters/email"
	"climbge/internal/adapters/http/middleware"
	accountStore "climbge/internal/adapters/storage/account"
	feedbackStore "climbge/internal/adapters/storage/feedback"
	gradeStore "climbge/internal/adapters/storage/grade"
	measurementStore "climbge/internal/adapters/storage/measurement"
	sessionStore "climbge/internal/adapters/storage/session"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	SessionStore     sessionStore.Store
	GradeStore       gradeStore.Store
	MeasurementStore measurementStore.Store
	FeedbackStore    feedbackStore.Store
}

// loadCSRFKey reads the CSRF secret from CLIMBGE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLIMBGE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLIMBGE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLIMBGE_ENV") == "production" {
		log.Fatal("CLIMBGE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CLIMBGE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// feedbackNotifyTo is where feedback notifications are delivered.
var feedbackNotifyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, notifyTo string) {
	emailSender = sender
	feedbackNotifyTo = notifyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CLIMBGE_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

// registerRoutes binds every route on the mux. Authenticated routes are
// wrapped in RequireAuth individually so the public ones stay open.
func registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("POST /api/signup", handleSignup)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.Handle("POST /api/logout", authed(handleLogout))

	mux.HandleFunc("GET /api/grades", handleListGrades)
	mux.Handle("GET /api/unknown-grades", authed(handleListUnknownGrades))

	mux.Handle("POST /api/commit-session", authed(handleCommitSession))
	mux.Handle("GET /api/session/{id}", authed(handleSessionDetail))
	mux.Handle("GET /api/history", authed(handleHistory))
	mux.Handle("GET /api/last-climb", authed(handleLastClimb))
	mux.Handle("GET /api/weekly-summary", authed(handleWeeklySummary))

	mux.Handle("GET /api/user-measurements", authed(handleGetMeasurements))
	mux.Handle("POST /api/user-measurements", authed(handleSaveMeasurements))
	mux.Handle("GET /api/profile", authed(handleProfile))

	mux.Handle("POST /api/feedback", authed(handleSubmitFeedback))
}
