package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"watwallet/internal/core"
	"watwallet/internal/store"
)

type contextKey string

const requestIDKey contextKey = "request_id"

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// generateRequestID creates a unique request id for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.Date{Time: parsedTime}, nil
}

func formatDate(d core.Date) string {
	return d.Format("2006-01-02")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, _ *http.Request, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps the domain error taxonomy onto HTTP status codes:
// validation failures are the client's fault, missing records are 404,
// backend trouble is a 502 so callers can distinguish it from a bug.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrNoCurrentSeason), errors.Is(err, core.ErrAmbiguousSeason):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrDataUnavailable):
		writeError(w, r, http.StatusBadGateway, "data store unavailable")
	case errors.Is(err, core.ErrReferenceResolution):
		writeError(w, r, http.StatusBadGateway, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Unhandled service error", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody parses the JSON request body into dst with unknown fields
// rejected.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
