package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "climbge/internal/adapters/email"
	web "climbge/internal/adapters/http"
	"climbge/internal/adapters/storage"
	accountStore "climbge/internal/adapters/storage/account"
	feedbackStore "climbge/internal/adapters/storage/feedback"
	gradeStore "climbge/internal/adapters/storage/grade"
	measurementStore "climbge/internal/adapters/storage/measurement"
	sessionStore "climbge/internal/adapters/storage/session"
	"climbge/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CLIMBGE_DB", "climbge.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Wrap the DB so slow queries get logged
	timedDB := storage.NewTimedDB(db)

	grdStore := gradeStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     accountStore.NewSQLiteStore(timedDB),
		SessionStore:     sessionStore.NewSQLiteStore(timedDB),
		GradeStore:       grdStore,
		MeasurementStore: measurementStore.NewSQLiteStore(timedDB),
		FeedbackStore:    feedbackStore.NewSQLiteStore(timedDB),
	}

	// Seed the built-in grade catalog (idempotent)
	seedDeps := orchestrators.SeedGradeSystemsDeps{GradeStore: grdStore}
	if err := orchestrators.ExecuteSeedGradeSystems(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed grade catalog: %v", err)
	}

	// Configure email sender for feedback notifications
	resendKey := os.Getenv("CLIMBGE_RESEND_KEY")
	notifyTo := envOrDefault("CLIMBGE_FEEDBACK_TO", "feedback@climbge.app")
	if resendKey != "" {
		from := envOrDefault("CLIMBGE_RESEND_FROM", "Climbge <noreply@climbge.app>")
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, from), notifyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), notifyTo)
		if os.Getenv("CLIMBGE_ENV") == "production" {
			log.Println("WARNING: CLIMBGE_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CLIMBGE_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(stores)

	addr := envOrDefault("CLIMBGE_ADDR", ":8080")
	log.Printf("climbge %s starting on %s (env=%s)", version, addr, envOrDefault("CLIMBGE_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
