// ABOUTME: Tests for audit ownership and role checks
// ABOUTME: Verifies the user < manager < admin hierarchy

package services

import (
	"errors"
	"testing"

	"github.com/ecg-energy/audit-analyzer/models"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role    models.Role
		minimum models.Role
		want    bool
	}{
		{models.RoleUser, models.RoleUser, true},
		{models.RoleUser, models.RoleManager, false},
		{models.RoleManager, models.RoleUser, true},
		{models.RoleManager, models.RoleAdmin, false},
		{models.RoleAdmin, models.RoleManager, true},
		{"root", models.RoleUser, false},
		{"", models.RoleUser, false},
	}

	for _, tt := range tests {
		if got := RoleAtLeast(tt.role, tt.minimum); got != tt.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.want)
		}
	}
}

func TestCheckAuditAccess(t *testing.T) {
	audit := models.AuditRecord{ID: "a1", OwnerID: "owner"}

	tests := []struct {
		name    string
		userID  string
		role    models.Role
		allowed bool
	}{
		{"owner", "owner", models.RoleUser, true},
		{"other user", "someone", models.RoleUser, false},
		{"manager", "someone", models.RoleManager, true},
		{"admin", "someone", models.RoleAdmin, true},
		{"owner with unknown role", "owner", "guest", false},
		{"anonymous", "", models.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAuditAccess(tt.userID, tt.role, audit)
			if tt.allowed && err != nil {
				t.Errorf("expected access, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
