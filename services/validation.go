// ABOUTME: Input validation for audit records, equipment items and path IDs
// ABOUTME: Enforces usage ranges before data reaches the store or the engine

package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/ecg-energy/audit-analyzer/models"
)

// ValidationError reports a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateID checks that a path identifier is a canonical lowercase UUID
func ValidateID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != id {
		return invalid("id", "invalid ID format: %s", sanitizeForLog(id))
	}
	return nil
}

// ValidateAudit checks the audit record header fields
func ValidateAudit(a models.AuditRecord) error {
	if strings.TrimSpace(a.ClientName) == "" {
		return invalid("client_name", "is required")
	}
	if strings.TrimSpace(a.AuditorName) == "" {
		return invalid("auditor_name", "is required")
	}
	return nil
}

// ValidateUsage checks the fields shared by every equipment kind
func ValidateUsage(u models.Usage) error {
	if strings.TrimSpace(u.RoomName) == "" {
		return invalid("room_name", "is required")
	}
	if u.HoursPerDay < 0 || u.HoursPerDay > 24 {
		return invalid("duration_per_day", "must be between 0 and 24, got %g", u.HoursPerDay)
	}
	if u.DaysPerWeek < 1 || u.DaysPerWeek > 7 {
		return invalid("days_per_week", "must be between 1 and 7, got %g", u.DaysPerWeek)
	}
	if u.Quantity < 1 {
		return invalid("quantity", "must be at least 1, got %g", u.Quantity)
	}
	if u.RatedPowerW < 0 {
		return invalid("power", "must not be negative")
	}
	if u.Occupancy < 0 {
		return invalid("occupancy", "must not be negative")
	}
	return nil
}

// ValidateEquipment checks an item of any kind
func ValidateEquipment(item models.Equipment) error {
	if err := ValidateUsage(item.Usage()); err != nil {
		return err
	}

	switch it := item.(type) {
	case models.AirConditioningItem:
		return validateAirConditioning(it)
	case models.LightingItem:
		return validateLighting(it)
	case models.OtherEquipmentItem:
		if strings.TrimSpace(it.EquipmentName) == "" {
			return invalid("equipment_name", "is required")
		}
	}
	return nil
}

func validateAirConditioning(it models.AirConditioningItem) error {
	if !it.ACType.Valid() {
		return invalid("ac_type", "must be one of Central, Standing, Split, Other, got %q", sanitizeForLog(string(it.ACType)))
	}
	if it.ACType == models.ACTypeOther && strings.TrimSpace(it.OtherACType) == "" {
		return invalid("other_ac_type", "is required when ac_type is Other")
	}
	if it.InputPowerW <= 0 {
		return invalid("input_power_w", "must be positive")
	}
	if it.EER < 0 {
		return invalid("eer", "must not be negative")
	}
	if err := validateDimensions(it.RoomLengthM, it.RoomWidthM, it.RoomHeightM); err != nil {
		return err
	}
	if it.CapacityBTU < 0 || it.CapacityW < 0 || it.CoolingCapacityKW < 0 {
		return invalid("capacity", "must not be negative")
	}
	return nil
}

func validateLighting(it models.LightingItem) error {
	if err := validateDimensions(it.RoomLengthM, it.RoomWidthM, it.RoomHeightM); err != nil {
		return err
	}
	if it.LampsPerFitting < 0 {
		return invalid("lamps_per_fitting", "must not be negative")
	}
	if it.AverageLux < 0 {
		return invalid("average_lux", "must not be negative")
	}
	return nil
}

func validateDimensions(length, width, height float64) error {
	if length < 0 || width < 0 || height < 0 {
		return invalid("room_dimensions", "must not be negative")
	}
	return nil
}

// ValidateCreateUser checks an admin user creation request
func ValidateCreateUser(req models.CreateUserRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return invalid("email", "invalid address: %s", sanitizeForLog(req.Email))
	}
	if len(req.Password) < 8 {
		return invalid("password", "must be at least 8 characters")
	}
	if req.Role != "" && !req.Role.Valid() {
		return invalid("role", "must be user, manager or admin")
	}
	return nil
}

// ValidateProfile checks a profile update. An empty email keeps the current one.
func ValidateProfile(displayName, email string) error {
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return invalid("email", "invalid address: %s", sanitizeForLog(email))
		}
	}
	if len(displayName) > 200 {
		return invalid("display_name", "must be at most 200 characters")
	}
	return nil
}
