// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers, minimum roles and rate limits

package handlers

import (
	"net/http"

	"github.com/ecg-energy/audit-analyzer/models"
)

// RateClass selects which rate limiter guards a route
type RateClass int

const (
	RateNone  RateClass = iota
	RateLogin           // keyed by client IP
	RateWrite           // keyed by user, falling back to IP
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // gorilla/mux path template (e.g., "/api/v1/audits/{auditID}")
	Handler http.HandlerFunc // Handler function
	Role    models.Role      // Minimum role; empty means public
	Limit   RateClass
}

// equipmentPath matches the three inventory kinds in a single template
const equipmentPath = "/api/v1/audits/{auditID}/{kind:air-conditioning|lighting|other-equipment}"

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	// Managers are not a route gate: they pass user routes and see every audit
	user, admin := models.RoleUser, models.RoleAdmin

	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Auth
		{Method: http.MethodPost, Path: "/api/v1/auth/login", Handler: h.Login, Limit: RateLogin},
		{Method: http.MethodPost, Path: "/api/v1/auth/logout", Handler: h.Logout, Role: user},
		{Method: http.MethodGet, Path: "/api/v1/auth/me", Handler: h.Me, Role: user},
		{Method: http.MethodPut, Path: "/api/v1/auth/password", Handler: h.ChangePassword, Role: user, Limit: RateLogin},

		// Audits
		{Method: http.MethodGet, Path: "/api/v1/audits", Handler: h.ListAudits, Role: user},
		{Method: http.MethodPost, Path: "/api/v1/audits", Handler: h.CreateAudit, Role: user, Limit: RateWrite},
		{Method: http.MethodGet, Path: "/api/v1/audits/{auditID}", Handler: h.GetAudit, Role: user},
		{Method: http.MethodPut, Path: "/api/v1/audits/{auditID}", Handler: h.UpdateAudit, Role: user, Limit: RateWrite},
		{Method: http.MethodDelete, Path: "/api/v1/audits/{auditID}", Handler: h.DeleteAudit, Role: user, Limit: RateWrite},

		// Equipment
		{Method: http.MethodGet, Path: equipmentPath, Handler: h.ListEquipment, Role: user},
		{Method: http.MethodPost, Path: equipmentPath, Handler: h.AddEquipment, Role: user, Limit: RateWrite},
		{Method: http.MethodPut, Path: equipmentPath + "/{itemID}", Handler: h.UpdateEquipment, Role: user, Limit: RateWrite},
		{Method: http.MethodDelete, Path: equipmentPath + "/{itemID}", Handler: h.DeleteEquipment, Role: user, Limit: RateWrite},

		// Reports
		{Method: http.MethodGet, Path: "/api/v1/audits/{auditID}/report", Handler: h.GetReport, Role: user},
		{Method: http.MethodGet, Path: "/api/v1/audits/{auditID}/report.pdf", Handler: h.GetReportPDF, Role: user},
		{Method: http.MethodPost, Path: "/api/v1/reports/preview", Handler: h.PreviewReport, Role: user, Limit: RateWrite},

		// Users
		{Method: http.MethodGet, Path: "/api/v1/users", Handler: h.ListUsers, Role: admin},
		{Method: http.MethodPost, Path: "/api/v1/users", Handler: h.CreateUser, Role: admin, Limit: RateWrite},
		{Method: http.MethodPut, Path: "/api/v1/users/{userID}/role", Handler: h.UpdateUserRole, Role: admin, Limit: RateWrite},
		{Method: http.MethodPut, Path: "/api/v1/users/{userID}/profile", Handler: h.UpdateUserProfile, Role: admin, Limit: RateWrite},
		{Method: http.MethodPut, Path: "/api/v1/users/{userID}/password", Handler: h.ResetUserPassword, Role: admin, Limit: RateWrite},
		{Method: http.MethodDelete, Path: "/api/v1/users/{userID}", Handler: h.DeleteUser, Role: admin, Limit: RateWrite},
	}
}
