package handlers

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/services"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into dst and validates it.
// It writes the 400 response itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

// writeServiceError maps domain and service errors to HTTP statuses.
// Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrRouteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrInvalidRouteID),
		errors.Is(err, domain.ErrNoDropoffForBellTime),
		errors.Is(err, domain.ErrInvalidTimeOfDay),
		errors.Is(err, domain.ErrUnknownChassis):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionChanged),
		errors.Is(err, domain.ErrNotEvaluated):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNoRoutes),
		errors.Is(err, domain.ErrNoElectricFleet):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrRoutingNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), op+" failed", "err", err)
		writeError(w, r, status, "internal server error")
		return
	}

	slog.DebugContext(r.Context(), op+" rejected", "status", status, "err", err)
	writeError(w, r, status, err.Error())
}
