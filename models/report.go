// ABOUTME: Computed energy report models returned by the estimation engine
// ABOUTME: Plain numbers and strings consumed by the JSON API and PDF renderer

package models

import "time"

// EnergyBreakdown holds monthly energy estimates per category, in kWh
type EnergyBreakdown struct {
	ACEnergyKWh       float64 `json:"ac_energy_kwh"`
	LightingEnergyKWh float64 `json:"lighting_energy_kwh"`
	OtherEnergyKWh    float64 `json:"other_energy_kwh"`
	TotalEnergyKWh    float64 `json:"total_energy_kwh"`
}

// ForCategory returns the category subtotal
func (e EnergyBreakdown) ForCategory(c Category) float64 {
	switch c {
	case CategoryAirConditioning:
		return e.ACEnergyKWh
	case CategoryLighting:
		return e.LightingEnergyKWh
	case CategoryOtherEquipment:
		return e.OtherEnergyKWh
	}
	return 0
}

// EfficiencyMetrics normalizes total energy by floor area and occupancy.
// Ratios are zero when their denominator is zero.
type EfficiencyMetrics struct {
	TotalArea       float64 `json:"total_area"`
	TotalOccupancy  float64 `json:"total_occupancy"`
	EnergyPerArea   float64 `json:"energy_per_area"`
	EnergyPerPerson float64 `json:"energy_per_person"`
}

// ItemEnergy is the per-row energy figure displayed next to an inventory item
type ItemEnergy struct {
	Category  Category `json:"category"`
	ItemID    string   `json:"item_id,omitempty"`
	RoomName  string   `json:"room_name"`
	Name      string   `json:"name,omitempty"`
	EnergyKWh float64  `json:"energy_kwh"`
}

// AuditReport is the full engine output for one snapshot
type AuditReport struct {
	Audit           AuditRecord       `json:"audit"`
	Energy          EnergyBreakdown   `json:"energy"`
	Metrics         EfficiencyMetrics `json:"metrics"`
	Recommendations []string          `json:"recommendations"`
	Items           []ItemEnergy      `json:"items"`
	GeneratedAt     time.Time         `json:"generated_at"`
}
