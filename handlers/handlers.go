// ABOUTME: HTTP handlers for the energy audit API
// ABOUTME: Shared handler state, JSON helpers and store error mapping

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecg-energy/audit-analyzer/config"
	"github.com/ecg-energy/audit-analyzer/metrics"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
	"github.com/ecg-energy/audit-analyzer/store"
)

// maxBodyBytes bounds request bodies; a full audit snapshot fits comfortably
const maxBodyBytes = 1 << 20

type Handler struct {
	store        *store.Store
	sessions     *services.SessionService
	loader       *services.SnapshotLoader
	reports      *services.ReportService
	metrics      *metrics.Metrics
	cookieSecure bool
}

// NewHandler wires the API handlers. cfg may be nil in tests; cookies are then Secure.
func NewHandler(cfg *config.Config, st *store.Store, sessions *services.SessionService, reports *services.ReportService, m *metrics.Metrics) *Handler {
	h := &Handler{
		store:        st,
		sessions:     sessions,
		reports:      reports,
		metrics:      m,
		cookieSecure: true,
	}
	if st != nil {
		h.loader = services.NewSnapshotLoader(st)
	}
	if cfg != nil {
		h.cookieSecure = cfg.CookieSecure
	}
	return h
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a bounded JSON body into v, writing a 400 on failure
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeErrorDetails(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeStoreError maps store and service errors onto HTTP status codes
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, notFound string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeErrorDetails(w, "Validation failed", verr.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, notFound, http.StatusNotFound)
	case errors.Is(err, store.ErrConflict):
		h.writeErrorDetails(w, "Conflict", err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrForbidden):
		h.writeError(w, "Access denied", http.StatusForbidden)
	default:
		slog.Error("Request failed", "error", err)
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
