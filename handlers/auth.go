// ABOUTME: Auth handlers for email/password login with server-side sessions
// ABOUTME: Handles login, logout, current user and password changes with httpOnly cookies

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecg-energy/audit-analyzer/middleware"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/store"
)

// Login verifies credentials against the store and creates a server-side session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.store.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		h.metrics.LoginAttempt(false)
		if !errors.Is(err, store.ErrInvalidCredentials) {
			slog.Error("Authentication error", "error", err)
		}
		slog.Warn("Authentication failed", "client_ip", middleware.ClientIP(r))
		h.writeJSON(w, http.StatusUnauthorized, models.LoginResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	sessionID, err := h.sessions.Create(user)
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		h.writeError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	h.metrics.LoginAttempt(true)
	slog.Info("User logged in", "user_id", user.ID, "role", user.Role)

	h.setSessionCookie(w, sessionID)

	public := user.Public()
	h.writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Token:   sessionID,
		User:    &public,
	})
}

// Me returns the current user's account
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r)
	if claims == nil {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := h.store.GetUser(claims.UserID)
	if err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, user.Public())
}

// Logout ends the caller's session and clears the cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := middleware.GetUserClaims(r); claims != nil && claims.SessionID != "" {
		h.sessions.Delete(claims.SessionID)
	}

	h.clearSessionCookie(w)

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the caller's password after re-checking the current one.
// All of the caller's sessions are revoked, including this one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r)
	if claims == nil {
		h.writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req changePasswordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 8 {
		h.writeError(w, "New password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	if _, err := h.store.AuthenticateUser(claims.Email, req.CurrentPassword); err != nil {
		h.writeError(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}
	if err := h.store.SetPassword(claims.UserID, req.NewPassword); err != nil {
		h.writeStoreError(w, err, "User not found")
		return
	}

	revoked := h.sessions.RevokeUser(claims.UserID)
	slog.Info("Password changed", "user_id", claims.UserID, "sessions_revoked", revoked)

	h.clearSessionCookie(w)
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ValidateSession resolves a session token for the Auth middleware
func (h *Handler) ValidateSession(token string) *middleware.UserClaims {
	session, err := h.sessions.Get(token)
	if err != nil {
		return nil
	}
	return &middleware.UserClaims{
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      session.Role,
		SessionID: session.ID,
	}
}

// setSessionCookie sets the httpOnly session cookie
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
	})
}

// clearSessionCookie removes the session cookie
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1, // Delete cookie
	})
}
