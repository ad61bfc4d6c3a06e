// ABOUTME: Role-based access control middleware for API endpoints
// ABOUTME: Gates endpoints by the minimum role of the session's user

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
)

// RequireRole returns middleware that enforces a minimum role.
// Panics if requiredRole is unknown (catches config errors at startup).
// Anonymous requests get 401; authenticated callers below the role get 403.
// Unknown caller roles are denied (fail-closed).
func RequireRole(requiredRole models.Role) func(http.HandlerFunc) http.HandlerFunc {
	if !requiredRole.Valid() {
		panic(fmt.Sprintf("RequireRole: unknown role %q; valid roles: %v", requiredRole,
			[]models.Role{models.RoleUser, models.RoleManager, models.RoleAdmin}))
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserClaims(r)
			if claims == nil {
				writeJSONError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if !services.RoleAtLeast(claims.Role, requiredRole) {
				slog.Warn("RBAC authorization denied",
					"path", sanitizePath(r.URL.Path),
					"method", r.Method,
					"required_role", requiredRole,
					"user_role", claims.Role,
					"user", claims.Email,
				)
				writeJSONError(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next(w, r)
		}
	}
}
