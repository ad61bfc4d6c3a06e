// ABOUTME: Audit ownership and role checks
// ABOUTME: Users reach only their own audits; managers and admins reach all

package services

import (
	"errors"

	"github.com/ecg-energy/audit-analyzer/models"
)

// ErrForbidden is returned when a caller may not touch an audit
var ErrForbidden = errors.New("forbidden")

// roleRank orders roles from least to most privileged
var roleRank = map[models.Role]int{
	models.RoleUser:    1,
	models.RoleManager: 2,
	models.RoleAdmin:   3,
}

// RoleAtLeast reports whether role meets the minimum. Unknown roles never do.
func RoleAtLeast(role, minimum models.Role) bool {
	have, ok := roleRank[role]
	if !ok {
		return false
	}
	return have >= roleRank[minimum]
}

// CanViewAll reports whether the role sees every audit
func CanViewAll(role models.Role) bool {
	return RoleAtLeast(role, models.RoleManager)
}

// CheckAuditAccess returns ErrForbidden unless the caller owns the audit or sees all audits
func CheckAuditAccess(userID string, role models.Role, audit models.AuditRecord) error {
	if CanViewAll(role) {
		return nil
	}
	if userID != "" && audit.OwnerID == userID && RoleAtLeast(role, models.RoleUser) {
		return nil
	}
	return ErrForbidden
}
