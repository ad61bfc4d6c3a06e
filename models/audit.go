// ABOUTME: Audit and equipment inventory models consumed by the energy engine
// ABOUTME: JSON-serializable records matching the data-entry forms

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Category identifies one of the three equipment inventories of an audit
type Category string

const (
	CategoryAirConditioning Category = "air_conditioning"
	CategoryLighting        Category = "lighting"
	CategoryOtherEquipment  Category = "other_equipment"
)

// Categories lists the inventories in report order
var Categories = []Category{CategoryAirConditioning, CategoryLighting, CategoryOtherEquipment}

// Label returns the human-readable category name used in reports
func (c Category) Label() string {
	switch c {
	case CategoryAirConditioning:
		return "Air Conditioning"
	case CategoryLighting:
		return "Lighting"
	case CategoryOtherEquipment:
		return "Other Equipment"
	default:
		return string(c)
	}
}

// ACType is the kind of air conditioning unit
type ACType string

const (
	ACTypeCentral  ACType = "Central"
	ACTypeStanding ACType = "Standing"
	ACTypeSplit    ACType = "Split"
	ACTypeOther    ACType = "Other"
)

// Valid reports whether t is one of the known AC types
func (t ACType) Valid() bool {
	switch t {
	case ACTypeCentral, ACTypeStanding, ACTypeSplit, ACTypeOther:
		return true
	}
	return false
}

// Remarks is free text attached to an equipment item.
// Any non-string JSON value (null, number, object...) decodes to an empty remark.
type Remarks string

// UnmarshalJSON accepts any JSON value without failing
func (r *Remarks) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		*r = ""
		return nil
	}
	*r = Remarks(s)
	return nil
}

// AuditRecord identifies one audit job. Used for report metadata only.
type AuditRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	ClientName  string    `json:"client_name"`
	Branch      string    `json:"branch"`
	Location    string    `json:"location"`
	AuditorName string    `json:"auditor_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AirConditioningItem is one row of the air conditioning inventory
type AirConditioningItem struct {
	ID                string  `json:"id,omitempty"`
	AuditID           string  `json:"audit_id,omitempty"`
	RoomName          string  `json:"room_name"`
	Occupancy         float64 `json:"occupancy"`
	Quantity          float64 `json:"quantity"`
	InputPowerW       float64 `json:"input_power_w"`
	CapacityBTU       float64 `json:"capacity_btu,omitempty"`
	CapacityW         float64 `json:"capacity_w,omitempty"`
	CoolingCapacityKW float64 `json:"cooling_capacity_kw,omitempty"`
	EER               float64 `json:"eer"`
	RoomLengthM       float64 `json:"room_length_m"`
	RoomWidthM        float64 `json:"room_width_m"`
	RoomHeightM       float64 `json:"room_height_m"`
	DurationPerDay    float64 `json:"duration_per_day"`
	DaysPerWeek       float64 `json:"days_per_week"`
	Remarks           Remarks `json:"remarks"`
	ACType            ACType  `json:"ac_type"`
	OtherACType       string  `json:"other_ac_type,omitempty"`
}

// LightingItem is one row of the lighting inventory
type LightingItem struct {
	ID              string  `json:"id,omitempty"`
	AuditID         string  `json:"audit_id,omitempty"`
	RoomName        string  `json:"room_name"`
	Occupancy       float64 `json:"occupancy"`
	Quantity        float64 `json:"quantity"`
	PowerW          float64 `json:"power_w"`
	RoomLengthM     float64 `json:"room_length_m"`
	RoomWidthM      float64 `json:"room_width_m"`
	RoomHeightM     float64 `json:"room_height_m"`
	DurationPerDay  float64 `json:"duration_per_day"`
	DaysPerWeek     float64 `json:"days_per_week"`
	Remarks         Remarks `json:"remarks"`
	LampsPerFitting int     `json:"lamps_per_fitting,omitempty"`
	LampDescription string  `json:"lamp_description,omitempty"`
	AverageLux      float64 `json:"average_lux,omitempty"`
}

// OtherEquipmentItem is one row of the miscellaneous equipment inventory
type OtherEquipmentItem struct {
	ID             string  `json:"id,omitempty"`
	AuditID        string  `json:"audit_id,omitempty"`
	RoomName       string  `json:"room_name"`
	Occupancy      float64 `json:"occupancy"`
	EquipmentName  string  `json:"equipment_name"`
	EquipmentType  string  `json:"equipment_type"`
	Quantity       float64 `json:"quantity"`
	PowerW         float64 `json:"power_w"`
	DurationPerDay float64 `json:"duration_per_day"`
	DaysPerWeek    float64 `json:"days_per_week"`
	Remarks        Remarks `json:"remarks"`
}

// AuditSnapshot is a fully loaded audit: the record plus its three inventories
type AuditSnapshot struct {
	Audit           AuditRecord          `json:"audit"`
	AirConditioning []AirConditioningItem `json:"air_conditioning"`
	Lighting        []LightingItem        `json:"lighting"`
	OtherEquipment  []OtherEquipmentItem  `json:"other_equipment"`
}
