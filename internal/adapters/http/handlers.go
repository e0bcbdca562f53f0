package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"climbge/internal/adapters/http/middleware"
	measurementStore "climbge/internal/adapters/storage/measurement"
	sessionStore "climbge/internal/adapters/storage/session"
	"climbge/internal/application/orchestrators"
	"climbge/internal/application/projections"
	"climbge/internal/domain/feedback"
	"climbge/internal/domain/measurement"
	domainSession "climbge/internal/domain/session"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// apiError is the JSON error envelope every endpoint shares.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	writeJSON(w, status, e)
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal", "internal server error")
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Anything it
// doesn't recognise is treated as a storage failure and kept opaque.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainSession.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domainSession.ErrInvalidTimestamp):
		writeError(w, http.StatusBadRequest, "invalid_timestamp", err.Error())
	case errors.Is(err, domainSession.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, "invalid_time_range", err.Error())
	case errors.Is(err, measurement.ErrInvalidUnit),
		errors.Is(err, measurement.ErrInchesOutOfRange),
		errors.Is(err, measurement.ErrNegativeFeet),
		errors.Is(err, feedback.ErrEmptyBody),
		errors.Is(err, feedback.ErrBodyTooLong):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, sessionStore.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	default:
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Auth ---

func handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		StartedClimbing string `json:"startedClimbing"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
		return
	}

	id, err := orchestrators.ExecuteSignup(r.Context(), orchestrators.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		StartedClimbing: req.StartedClimbing,
	}, orchestrators.SignupDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "email_exists", err.Error())
			return
		}
		// Everything else from signup is a client-input problem.
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	token, err := sessions.Create(id, req.Email)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "userId": id})
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			writeError(w, http.StatusForbidden, "account_locked", err.Error())
			return
		}
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "userId": result.AccountID})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.SessionToken(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// --- Grade catalog ---

func handleListGrades(w http.ResponseWriter, r *http.Request) {
	systems, err := projections.QueryListGradeSystems(r.Context(),
		projections.ListGradeSystemsDeps{GradeStore: stores.GradeStore})
	if err != nil {
		internalError(w, err)
		return
	}

	type gradeSystemResponse struct {
		GradeID     int      `json:"gradeId"`
		GradeSystem string   `json:"gradeSystem"`
		Grades      []string `json:"grades"`
	}
	resp := make([]gradeSystemResponse, 0, len(systems))
	for _, s := range systems {
		resp = append(resp, gradeSystemResponse{GradeID: s.ID, GradeSystem: s.Label, Grades: s.Grades})
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleListUnknownGrades(w http.ResponseWriter, r *http.Request) {
	records, err := projections.QueryListUnknownGrades(r.Context(),
		projections.ListUnknownGradesDeps{GradeStore: stores.GradeStore})
	if err != nil {
		internalError(w, err)
		return
	}

	type unknownResponse struct {
		SystemLabel string `json:"systemLabel"`
		GradeLabel  string `json:"gradeLabel"`
		LoggedAt    string `json:"loggedAt"`
	}
	resp := make([]unknownResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, unknownResponse{
			SystemLabel: rec.SystemLabel,
			GradeLabel:  rec.GradeLabel,
			LoggedAt:    rec.LoggedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Session ingestion and views ---

func handleCommitSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		Session struct {
			StartedAt string `json:"started_at"`
			EndedAt   string `json:"ended_at"`
			Notes     string `json:"notes"`
			Location  string `json:"location"`
		} `json:"session"`
		Routes []struct {
			GradeSystem      *int   `json:"grade_system"`
			GradeSystemLabel string `json:"grade_system_label"`
			GradeLabel       string `json:"grade_label"`
			Attempts         int    `json:"attempts"`
			Sent             bool   `json:"sent"`
			SentAt           string `json:"sent_at"`
		} `json:"routes"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
		return
	}

	input := orchestrators.CommitSessionInput{
		UserID:    sess.UserID,
		StartedAt: req.Session.StartedAt,
		EndedAt:   req.Session.EndedAt,
		Notes:     req.Session.Notes,
		Location:  req.Session.Location,
	}
	for _, rt := range req.Routes {
		input.Routes = append(input.Routes, orchestrators.RouteInput{
			GradeSystem:      rt.GradeSystem,
			GradeSystemLabel: rt.GradeSystemLabel,
			GradeLabel:       rt.GradeLabel,
			Attempts:         rt.Attempts,
			Sent:             rt.Sent,
			SentAt:           rt.SentAt,
		})
	}

	result, err := orchestrators.ExecuteCommitSession(r.Context(), input,
		orchestrators.CommitSessionDeps{SessionStore: stores.SessionStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "session_id": result.SessionID})
}

func handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	entry, err := stores.SessionStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// A session is only visible to its owner; anyone else sees 404.
	if entry.Session.UserID != sess.UserID {
		writeError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	var notesHTML bytes.Buffer
	if entry.Session.Notes != "" {
		if err := mdRenderer.Convert([]byte(entry.Session.Notes), &notesHTML); err != nil {
			internalError(w, err)
			return
		}
	}

	type routeResponse struct {
		GradeSystem      int    `json:"gradeSystem"`
		GradeSystemLabel string `json:"gradeSystemLabel,omitempty"`
		GradeLabel       string `json:"gradeLabel"`
		Attempts         int    `json:"attempts"`
		Sent             bool   `json:"sent"`
		Flashed          bool   `json:"flashed"`
		SentAt           string `json:"sentAt,omitempty"`
	}
	routes := make([]routeResponse, 0, len(entry.Routes))
	for _, rt := range entry.Routes {
		resp := routeResponse{
			GradeSystem:      rt.System.ID,
			GradeSystemLabel: rt.System.Label,
			GradeLabel:       rt.GradeLabel,
			Attempts:         rt.Attempts,
			Sent:             rt.Sent,
			Flashed:          rt.Flashed(),
		}
		if !rt.SentAt.IsZero() {
			resp.SentAt = rt.SentAt.Format("2006-01-02T15:04:05Z07:00")
		}
		routes = append(routes, resp)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": entry.Session.ID,
		"startedAt": entry.Session.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		"endedAt":   entry.Session.EndedAt.Format("2006-01-02T15:04:05Z07:00"),
		"location":  entry.Session.Location,
		"notes":     entry.Session.Notes,
		"notesHtml": notesHTML.String(),
		"routes":    routes,
	})
}

func handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	history, err := projections.QueryGetHistory(r.Context(), sess.UserID, projections.GetHistoryDeps{
		SessionStore: stores.SessionStore,
		GradeStore:   stores.GradeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	// Attempted is int-or-placeholder on the wire, hence the any.
	type historyResponse struct {
		Sent      int    `json:"sent"`
		Attempted any    `json:"attempted"`
		Flashes   int    `json:"flashes"`
		Best      string `json:"best"`
		SentPct   string `json:"sentPct"`
		ClimbDay  string `json:"climbDay"`
		Location  string `json:"location"`
	}
	resp := make([]historyResponse, 0, len(history))
	for _, e := range history {
		entry := historyResponse{
			Sent:      e.Sent,
			Attempted: "-",
			Flashes:   e.Flashes,
			Best:      e.Best,
			SentPct:   e.SentPct,
			ClimbDay:  e.ClimbDay,
			Location:  e.Location,
		}
		if e.Attempted != nil {
			entry.Attempted = *e.Attempted
		}
		resp = append(resp, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": resp})
}

func handleLastClimb(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	last, err := projections.QueryGetLastClimb(r.Context(), sess.UserID, projections.GetLastClimbDeps{
		SessionStore: stores.SessionStore,
		GradeStore:   stores.GradeStore,
	})
	if err != nil {
		if errors.Is(err, projections.ErrNoSessions) {
			writeError(w, http.StatusNotFound, "not_found", "no sessions recorded")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"location":       last.Location,
		"climbDate":      last.ClimbDate,
		"highestGrade":   last.HighestGrade,
		"totalSent":      last.TotalSent,
		"totalAttempted": last.TotalAttempted,
	})
}

func handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	summary, err := projections.QueryGetWeeklySummary(r.Context(), sess.UserID,
		projections.GetWeeklySummaryDeps{SessionStore: stores.SessionStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalSession":   summary.TotalSessions,
		"totalSent":      summary.TotalSent,
		"totalAttempted": summary.TotalAttempted,
	})
}

// --- Measurements and profile ---

// measurementResponse renders a stored profile back to the client.
func measurementResponse(p measurement.Profile) map[string]any {
	unit := p.Unit
	if unit == "" {
		unit = measurement.UnitMetric
	}
	return map[string]any{
		"unitOfMeasurement": unit,
		"height":            p.Height,
		"weight":            p.Weight,
		"apeIndex":          p.ApeIndex,
		"gripStrength":      p.GripStrength,
	}
}

func handleGetMeasurements(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	p, err := stores.MeasurementStore.GetByUserID(r.Context(), sess.UserID)
	if err != nil {
		if !errors.Is(err, measurementStore.ErrNotFound) {
			internalError(w, err)
			return
		}
		// A user who never saved anything gets an empty profile, not a 404.
		p = measurement.Profile{UserID: sess.UserID}
	}
	writeJSON(w, http.StatusOK, measurementResponse(p))
}

func handleSaveMeasurements(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		UnitOfMeasurement string   `json:"unitOfMeasurement"`
		Height            *float64 `json:"height"`
		HeightFeet        *int     `json:"heightFeet"`
		HeightInches      *int     `json:"heightInches"`
		Weight            *float64 `json:"weight"`
		ApeIndex          *float64 `json:"apeIndex"`
		GripStrength      *float64 `json:"gripStrength"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
		return
	}

	saved, err := orchestrators.ExecuteSaveMeasurements(r.Context(), orchestrators.SaveMeasurementsInput{
		UserID:       sess.UserID,
		Unit:         req.UnitOfMeasurement,
		Height:       req.Height,
		HeightFeet:   req.HeightFeet,
		HeightInches: req.HeightInches,
		Weight:       req.Weight,
		ApeIndex:     req.ApeIndex,
		GripStrength: req.GripStrength,
	}, orchestrators.SaveMeasurementsDeps{MeasurementStore: stores.MeasurementStore})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, measurementResponse(saved))
}

func handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	profile, err := projections.QueryGetProfile(r.Context(), sess.UserID, projections.GetProfileDeps{
		AccountStore:     stores.AccountStore,
		MeasurementStore: stores.MeasurementStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	resp := map[string]any{
		"email":             profile.Email,
		"monthsClimbing":    profile.MonthsClimbing,
		"unitOfMeasurement": profile.Measurements.Unit,
		"height":            profile.Measurements.HeightDisplay,
		"weight":            profile.Measurements.WeightDisplay,
		"apeIndex":          profile.Measurements.ApeIndexDisplay,
		"gripStrength":      profile.Measurements.GripStrengthDisplay,
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Feedback ---

func handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		Body string `json:"body"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
		return
	}

	err := orchestrators.ExecuteSubmitFeedback(r.Context(), orchestrators.SubmitFeedbackInput{
		UserID:    sess.UserID,
		UserEmail: sess.Email,
		Body:      req.Body,
	}, orchestrators.SubmitFeedbackDeps{
		FeedbackStore: stores.FeedbackStore,
		EmailSender:   emailSender,
		NotifyTo:      feedbackNotifyTo,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}
