// ABOUTME: Admin HTTP handlers for user accounts
// ABOUTME: Role and credential changes revoke the affected user's sessions

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ecg-energy/audit-analyzer/middleware"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
)

type roleRequest struct {
	Role models.Role `json:"role"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// ListUsers returns every account, newest first
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.ListUsers())
}

// CreateUser adds an account
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := services.ValidateCreateUser(req); err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	user, err := h.store.CreateUser(req)
	if err != nil {
		h.writeStoreError(w, err, "")
		return
	}
	slog.Info("User created", "user_id", user.ID, "role", user.Role, "by", actorID(r))
	h.writeJSON(w, http.StatusCreated, user)
}

// UpdateUserRole changes a user's role and signs them out everywhere
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDVar(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		h.writeError(w, "Role must be user, manager or admin", http.StatusBadRequest)
		return
	}

	user, err := h.store.UpdateUserRole(userID, req.Role)
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	revoked := h.sessions.RevokeUser(userID)
	slog.Info("User role changed", "user_id", userID, "role", req.Role, "sessions_revoked", revoked, "by", actorID(r))
	h.writeJSON(w, http.StatusOK, user)
}

// UpdateUserProfile changes a user's display name and email
func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDVar(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := services.ValidateProfile(req.DisplayName, req.Email); err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	user, err := h.store.UpdateUserProfile(userID, req.DisplayName, req.Email)
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// ResetUserPassword sets a new password for a user and signs them out everywhere
func (h *Handler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDVar(w, r)
	if !ok {
		return
	}

	var req passwordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Password) < 8 {
		h.writeError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	if err := h.store.SetPassword(userID, req.Password); err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	revoked := h.sessions.RevokeUser(userID)
	slog.Info("User password reset", "user_id", userID, "sessions_revoked", revoked, "by", actorID(r))
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteUser removes an account. The user's audits are kept.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDVar(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(userID); err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	revoked := h.sessions.RevokeUser(userID)
	slog.Info("User deleted", "user_id", userID, "sessions_revoked", revoked, "by", actorID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) userIDVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := mux.Vars(r)["userID"]
	if err := services.ValidateID(userID); err != nil {
		h.writeStoreError(w, err, "")
		return "", false
	}
	return userID, true
}

func actorID(r *http.Request) string {
	if claims := middleware.GetUserClaims(r); claims != nil {
		return claims.UserID
	}
	return ""
}
