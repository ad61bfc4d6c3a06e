// ABOUTME: Energy estimation engine for audit snapshots
// ABOUTME: Computes per-item and per-category monthly kWh and efficiency metrics

package services

import (
	"fmt"
	"time"

	"github.com/ecg-energy/audit-analyzer/models"
)

// AdjustmentScope selects which categories receive room-size and occupancy load adjustments
type AdjustmentScope string

const (
	AdjustAll             AdjustmentScope = "all"
	AdjustAirConditioning AdjustmentScope = "air_conditioning"
)

// MetricsSource selects which inventories feed total area and occupancy
type MetricsSource string

const (
	MetricsFromLighting MetricsSource = "lighting"
	MetricsFromAll      MetricsSource = "all"
)

// EngineConfig holds the fixed coefficients and thresholds of the engine.
// Production code uses DefaultEngineConfig; tests may override fields.
type EngineConfig struct {
	WeeksPerMonth        float64 // 4: fixed approximation, not calendar-accurate
	AreaCoefficient      float64 // load increase per m² of room area
	OccupancyCoefficient float64 // load increase per occupant

	LowEERThreshold      float64 // average EER below this suggests upgrades
	HighACPowerW         float64 // single AC unit input power limit
	OtherEquipmentPowerW float64 // total other-equipment rated load limit
	LightingPowerW       float64 // total lighting rated load limit

	// Density rules from the first report revision, off by default
	DensityRules          bool
	LightingDensityWPerM2 float64
	EnergyPerAreaKWhPerM2 float64
	EnergyPerPersonKWh    float64

	AdjustmentScope AdjustmentScope
	MetricsSource   MetricsSource
}

// DefaultEngineConfig returns the canonical coefficients
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		WeeksPerMonth:         4,
		AreaCoefficient:       0.01,
		OccupancyCoefficient:  0.05,
		LowEERThreshold:       3,
		HighACPowerW:          5000,
		OtherEquipmentPowerW:  5000,
		LightingPowerW:        2000,
		LightingDensityWPerM2: 10,
		EnergyPerAreaKWhPerM2: 0.2,
		EnergyPerPersonKWh:    0.5,
		AdjustmentScope:       AdjustAll,
		MetricsSource:         MetricsFromLighting,
	}
}

// ParseAdjustmentScope validates a scope name. Empty selects the default.
func ParseAdjustmentScope(s string) (AdjustmentScope, error) {
	switch AdjustmentScope(s) {
	case "", AdjustAll:
		return AdjustAll, nil
	case AdjustAirConditioning:
		return AdjustAirConditioning, nil
	}
	return "", fmt.Errorf("invalid adjustment scope: %q (must be all or air_conditioning)", s)
}

// ParseMetricsSource validates a metrics source name. Empty selects the default.
func ParseMetricsSource(s string) (MetricsSource, error) {
	switch MetricsSource(s) {
	case "", MetricsFromLighting:
		return MetricsFromLighting, nil
	case MetricsFromAll:
		return MetricsFromAll, nil
	}
	return "", fmt.Errorf("invalid metrics source: %q (must be lighting or all)", s)
}

// Engine computes energy estimates and recommendations. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg     EngineConfig
	remarks *RemarkAnalyzer
	now     func() time.Time
}

// NewEngine creates an engine with the given configuration
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		cfg:     cfg,
		remarks: NewRemarkAnalyzer(),
		now:     time.Now,
	}
}

// Config returns the engine configuration
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// ItemEnergyKWh estimates the monthly energy of one item:
//
//	Wh = hours/day × (days/week × weeks/month) × (watts × quantity)
//	     × (1 + area × AreaCoefficient)            if area > 0
//	     × (1 + occupancy × OccupancyCoefficient)  if occupancy > 0
//
// A zero quantity counts as one unit. Negative inputs are not clamped.
func (e *Engine) ItemEnergyKWh(item models.Equipment) float64 {
	u := item.Usage()

	monthlyDays := u.DaysPerWeek * e.cfg.WeeksPerMonth
	wh := u.HoursPerDay * monthlyDays * (u.RatedPowerW * quantityOrOne(u.Quantity))

	if e.adjusts(item.Category()) {
		if u.AreaM2 > 0 {
			wh *= 1 + u.AreaM2*e.cfg.AreaCoefficient
		}
		if u.Occupancy > 0 {
			wh *= 1 + u.Occupancy*e.cfg.OccupancyCoefficient
		}
	}

	return wh / 1000
}

func (e *Engine) adjusts(c models.Category) bool {
	if e.cfg.AdjustmentScope == AdjustAirConditioning {
		return c == models.CategoryAirConditioning
	}
	return true
}

// Aggregate sums item energy per category and overall
func (e *Engine) Aggregate(snap models.AuditSnapshot) models.EnergyBreakdown {
	var out models.EnergyBreakdown
	for _, it := range snap.AirConditioning {
		out.ACEnergyKWh += e.ItemEnergyKWh(it)
	}
	for _, it := range snap.Lighting {
		out.LightingEnergyKWh += e.ItemEnergyKWh(it)
	}
	for _, it := range snap.OtherEquipment {
		out.OtherEnergyKWh += e.ItemEnergyKWh(it)
	}
	out.TotalEnergyKWh = out.ACEnergyKWh + out.LightingEnergyKWh + out.OtherEnergyKWh
	return out
}

// Metrics derives area and occupancy normalized energy figures.
// By default area and occupancy come from the lighting inventory only.
func (e *Engine) Metrics(snap models.AuditSnapshot, energy models.EnergyBreakdown) models.EfficiencyMetrics {
	var m models.EfficiencyMetrics

	for _, it := range snap.Lighting {
		m.TotalArea += it.RoomLengthM * it.RoomWidthM
		m.TotalOccupancy += it.Occupancy
	}
	if e.cfg.MetricsSource == MetricsFromAll {
		for _, it := range snap.AirConditioning {
			m.TotalArea += it.RoomLengthM * it.RoomWidthM
			m.TotalOccupancy += it.Occupancy
		}
		for _, it := range snap.OtherEquipment {
			m.TotalOccupancy += it.Occupancy
		}
	}

	m.EnergyPerArea = safeDiv(energy.TotalEnergyKWh, m.TotalArea)
	m.EnergyPerPerson = safeDiv(energy.TotalEnergyKWh, m.TotalOccupancy)
	return m
}

// Compute runs the whole pipeline for one snapshot
func (e *Engine) Compute(snap models.AuditSnapshot) models.AuditReport {
	energy := e.Aggregate(snap)
	metrics := e.Metrics(snap, energy)

	items := make([]models.ItemEnergy, 0, len(snap.AirConditioning)+len(snap.Lighting)+len(snap.OtherEquipment))
	for _, it := range snap.Items() {
		u := it.Usage()
		items = append(items, models.ItemEnergy{
			Category:  it.Category(),
			ItemID:    it.ItemID(),
			RoomName:  u.RoomName,
			Name:      u.EquipmentName,
			EnergyKWh: e.ItemEnergyKWh(it),
		})
	}

	recs := e.Recommendations(snap, metrics)
	if recs == nil {
		recs = []string{}
	}

	return models.AuditReport{
		Audit:           snap.Audit,
		Energy:          energy,
		Metrics:         metrics,
		Recommendations: recs,
		Items:           items,
		GeneratedAt:     e.now(),
	}
}

// safeDiv returns 0 instead of an infinite or undefined ratio
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
