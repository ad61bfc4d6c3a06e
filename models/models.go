// ABOUTME: Shared API response models
// ABOUTME: Health and error payloads used by handlers and middleware

package models

// HealthResponse reports service status
type HealthResponse struct {
	Status     string `json:"status"`
	Store      string `json:"store"`
	AuditCount int    `json:"audit_count"`
	UserCount  int    `json:"user_count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
