// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports store status and record counts

package handlers

import (
	"net/http"

	"github.com/ecg-energy/audit-analyzer/models"
)

// Health returns API health status including store mode and record counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status: "ok",
		Store:  "not_configured",
	}

	if h.store != nil {
		resp.Store = "memory"
		if h.store.Path() != "" {
			resp.Store = "file"
		}
		resp.AuditCount, resp.UserCount = h.store.Stats()
	}

	h.writeJSON(w, http.StatusOK, resp)
}
