// ABOUTME: HTTP handlers for audit records
// ABOUTME: Owners see their own audits; managers and admins see every audit

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecg-energy/audit-analyzer/middleware"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
)

// ListAudits returns the caller's audits, or every audit for managers and admins
func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r)
	if claims == nil {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var audits []models.AuditRecord
	if services.CanViewAll(claims.Role) {
		audits = h.store.ListAllAudits()
	} else {
		audits = h.store.ListAudits(claims.UserID)
	}
	h.writeJSON(w, http.StatusOK, audits)
}

// CreateAudit stores a new audit owned by the caller
func (h *Handler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r)
	if claims == nil {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var rec models.AuditRecord
	if !h.decodeJSON(w, r, &rec) {
		return
	}
	if err := services.ValidateAudit(rec); err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	created, err := h.store.CreateAudit(claims.UserID, rec)
	if err != nil {
		h.writeStoreError(w, err, "")
		return
	}
	slog.Info("Audit created", "audit_id", created.ID, "owner_id", claims.UserID)
	h.writeJSON(w, http.StatusCreated, created)
}

// GetAudit returns the full audit: record plus the three inventories
func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	snap, err := h.loader.Load(r.Context(), audit.ID)
	if err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// UpdateAudit replaces the audit header fields
func (h *Handler) UpdateAudit(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	var rec models.AuditRecord
	if !h.decodeJSON(w, r, &rec) {
		return
	}
	if err := services.ValidateAudit(rec); err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	updated, err := h.store.UpdateAudit(audit.ID, rec)
	if err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteAudit removes the audit and all of its equipment
func (h *Handler) DeleteAudit(w http.ResponseWriter, r *http.Request) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteAudit(audit.ID); err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return
	}
	slog.Info("Audit deleted", "audit_id", audit.ID)
	w.WriteHeader(http.StatusNoContent)
}

// authorizedAudit resolves {auditID} and checks the caller may access it.
// On failure the response has been written.
func (h *Handler) authorizedAudit(w http.ResponseWriter, r *http.Request) (models.AuditRecord, bool) {
	claims := middleware.GetUserClaims(r)
	if claims == nil {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return models.AuditRecord{}, false
	}

	auditID := mux.Vars(r)["auditID"]
	if err := services.ValidateID(auditID); err != nil {
		h.writeStoreError(w, err, "")
		return models.AuditRecord{}, false
	}

	audit, err := h.store.GetAudit(auditID)
	if err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return models.AuditRecord{}, false
	}
	if err := services.CheckAuditAccess(claims.UserID, claims.Role, audit); err != nil {
		slog.Warn("Audit access denied", "audit_id", audit.ID, "user_id", claims.UserID)
		h.writeStoreError(w, err, "")
		return models.AuditRecord{}, false
	}
	return audit, true
}
