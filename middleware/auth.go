// ABOUTME: Session authentication middleware for the audit API
// ABOUTME: Resolves Bearer tokens or the session cookie into user claims

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecg-energy/audit-analyzer/models"
)

// SessionCookieName is the cookie carrying the session token for browser clients
const SessionCookieName = "AUDIT_SESSION"

// SessionValidatorFunc resolves a session token into user claims, or nil if invalid
type SessionValidatorFunc func(token string) *UserClaims

// UserClaims identifies the authenticated caller
type UserClaims struct {
	UserID    string
	Email     string
	Role      models.Role
	SessionID string
}

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const userClaimsKey contextKey = "userClaims"

// TokenFromRequest returns the session token from the Authorization header
// (takes precedence) or the session cookie. ok is false when the header is
// present but not a Bearer token.
func TokenFromRequest(r *http.Request) (token string, ok bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", false
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), true
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value, true
	}
	return "", true
}

// Auth returns middleware that attaches user claims for a valid session.
// Requests without credentials pass through anonymously; RequireRole rejects
// them where authentication is needed. Presented but invalid credentials get 401.
func Auth(validate SessionValidatorFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := TokenFromRequest(r)
			if !ok {
				slog.Debug("Auth rejected: invalid format", "path", sanitizePath(r.URL.Path))
				writeJSONError(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}

			if token == "" {
				next(w, r)
				return
			}

			var claims *UserClaims
			if validate != nil {
				claims = validate(token)
			}
			if claims == nil {
				slog.Debug("Auth rejected: invalid session", "path", sanitizePath(r.URL.Path))
				writeJSONError(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}

			claims.SessionID = token
			slog.Debug("Auth: valid session", "path", sanitizePath(r.URL.Path), "user", claims.Email)
			next(w, r.WithContext(WithUserClaims(r.Context(), claims)))
		}
	}
}

// WithUserClaims returns a context carrying claims
func WithUserClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims extracts user claims from request context.
// Returns nil if no claims are present.
func GetUserClaims(r *http.Request) *UserClaims {
	claims, ok := r.Context().Value(userClaimsKey).(*UserClaims)
	if !ok {
		return nil
	}
	return claims
}
