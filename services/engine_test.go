// ABOUTME: Tests for the energy estimation engine
// ABOUTME: Covers item energy formula, aggregation, metrics and report assembly

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecg-energy/audit-analyzer/models"
)

func baseAC() models.AirConditioningItem {
	return models.AirConditioningItem{
		RoomName:       "101",
		InputPowerW:    1500,
		DurationPerDay: 8,
		DaysPerWeek:    5,
		Quantity:       1,
		EER:            3.5,
		ACType:         models.ACTypeSplit,
	}
}

func TestItemEnergy_Base(t *testing.T) {
	// Scenario: 1500 W, 8 h/day, 5 days/week, no area, no occupancy
	// 8 × 20 × 1500 / 1000 = 240 kWh
	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 240.0, e.ItemEnergyKWh(baseAC()), 1e-9)
}

func TestItemEnergy_AreaAdjustment(t *testing.T) {
	// Scenario: 20 m² room → 240 × 1.2 = 288 kWh
	item := baseAC()
	item.RoomLengthM = 5
	item.RoomWidthM = 4

	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 288.0, e.ItemEnergyKWh(item), 1e-9)
}

func TestItemEnergy_OccupancyAdjustment(t *testing.T) {
	// Scenario: 4 occupants → 240 × 1.2 = 288 kWh
	item := baseAC()
	item.Occupancy = 4

	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 288.0, e.ItemEnergyKWh(item), 1e-9)
}

func TestItemEnergy_AdjustmentsCompose(t *testing.T) {
	// 240 × 1.2 × 1.2 = 345.6 kWh
	item := baseAC()
	item.RoomLengthM = 5
	item.RoomWidthM = 4
	item.Occupancy = 4

	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 345.6, e.ItemEnergyKWh(item), 1e-9)
}

func TestItemEnergy_HeightIgnored(t *testing.T) {
	item := baseAC()
	item.RoomHeightM = 12

	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 240.0, e.ItemEnergyKWh(item), 1e-9)
}

func TestItemEnergy_ZeroQuantityCountsAsOne(t *testing.T) {
	item := baseAC()
	item.Quantity = 0

	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 240.0, e.ItemEnergyKWh(item), 1e-9)
}

func TestItemEnergy_ScalesWithQuantity(t *testing.T) {
	item := baseAC()
	item.Quantity = 3

	e := NewEngine(DefaultEngineConfig())
	assert.InDelta(t, 720.0, e.ItemEnergyKWh(item), 1e-9)
}

func TestItemEnergy_ZeroHoursIsZero(t *testing.T) {
	item := baseAC()
	item.DurationPerDay = 0
	item.Occupancy = 10
	item.RoomLengthM = 10
	item.RoomWidthM = 10

	e := NewEngine(DefaultEngineConfig())
	assert.Zero(t, e.ItemEnergyKWh(item))
}

func TestItemEnergy_ZeroPowerIsZero(t *testing.T) {
	item := baseAC()
	item.InputPowerW = 0
	item.Occupancy = 10
	item.RoomLengthM = 10
	item.RoomWidthM = 10

	e := NewEngine(DefaultEngineConfig())
	assert.Zero(t, e.ItemEnergyKWh(item))
}

func TestItemEnergy_NegativeInputsDoNotPanic(t *testing.T) {
	// Negative power is not clamped: 8 × 20 × -250 / 1000 = -40 kWh.
	// A negative area skips the area adjustment.
	item := baseAC()
	item.InputPowerW = -250
	item.RoomLengthM = -2
	item.RoomWidthM = 3
	item.Occupancy = -1

	e := NewEngine(DefaultEngineConfig())
	var got float64
	require.NotPanics(t, func() { got = e.ItemEnergyKWh(item) })
	assert.InDelta(t, -40.0, got, 1e-9)

	light := models.LightingItem{PowerW: 10, DurationPerDay: -2, DaysPerWeek: 5}
	require.NotPanics(t, func() { got = e.ItemEnergyKWh(light) })
	assert.InDelta(t, -0.4, got, 1e-9)
}

func TestItemEnergy_AdjustmentScope(t *testing.T) {
	light := models.LightingItem{
		RoomName:       "Hall",
		PowerW:         100,
		Quantity:       10,
		DurationPerDay: 10,
		DaysPerWeek:    5,
		RoomLengthM:    10,
		RoomWidthM:     10,
		Occupancy:      2,
	}
	// Base: 10 × 20 × 1000 / 1000 = 200 kWh

	t.Run("all categories adjusted", func(t *testing.T) {
		e := NewEngine(DefaultEngineConfig())
		assert.InDelta(t, 200.0*2*1.1, e.ItemEnergyKWh(light), 1e-9)
	})

	t.Run("air conditioning only", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.AdjustmentScope = AdjustAirConditioning
		e := NewEngine(cfg)
		assert.InDelta(t, 200.0, e.ItemEnergyKWh(light), 1e-9)

		ac := baseAC()
		ac.Occupancy = 4
		assert.InDelta(t, 288.0, e.ItemEnergyKWh(ac), 1e-9)
	})
}

func TestAggregate_SumsCategories(t *testing.T) {
	snap := models.AuditSnapshot{
		AirConditioning: []models.AirConditioningItem{baseAC(), baseAC()},
		Lighting: []models.LightingItem{
			{PowerW: 50, Quantity: 4, DurationPerDay: 10, DaysPerWeek: 5},
		},
		OtherEquipment: []models.OtherEquipmentItem{
			{EquipmentName: "Computer", PowerW: 200, Quantity: 2, DurationPerDay: 9, DaysPerWeek: 5},
		},
	}

	e := NewEngine(DefaultEngineConfig())
	got := e.Aggregate(snap)

	assert.InDelta(t, 480.0, got.ACEnergyKWh, 1e-9)
	assert.InDelta(t, 40.0, got.LightingEnergyKWh, 1e-9)
	assert.InDelta(t, 72.0, got.OtherEnergyKWh, 1e-9)
	assert.InDelta(t, got.ACEnergyKWh+got.LightingEnergyKWh+got.OtherEnergyKWh, got.TotalEnergyKWh, 1e-9)
}

func TestAggregate_EmptySnapshot(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())
	got := e.Aggregate(models.AuditSnapshot{})
	assert.Equal(t, models.EnergyBreakdown{}, got)
}

func TestMetrics_LightingOnlyByDefault(t *testing.T) {
	// Scenario: lighting empty, AC and other present → area and occupancy 0
	snap := models.AuditSnapshot{
		AirConditioning: []models.AirConditioningItem{{
			InputPowerW: 1000, DurationPerDay: 8, DaysPerWeek: 5,
			RoomLengthM: 5, RoomWidthM: 5, Occupancy: 3, EER: 3.2,
		}},
		OtherEquipment: []models.OtherEquipmentItem{{PowerW: 100, DurationPerDay: 1, DaysPerWeek: 1, Occupancy: 2}},
	}

	e := NewEngine(DefaultEngineConfig())
	energy := e.Aggregate(snap)
	m := e.Metrics(snap, energy)

	assert.Greater(t, energy.TotalEnergyKWh, 0.0)
	assert.Zero(t, m.TotalArea)
	assert.Zero(t, m.TotalOccupancy)
	assert.Zero(t, m.EnergyPerArea)
	assert.Zero(t, m.EnergyPerPerson)
}

func TestMetrics_Ratios(t *testing.T) {
	snap := models.AuditSnapshot{
		Lighting: []models.LightingItem{
			{PowerW: 100, DurationPerDay: 5, DaysPerWeek: 5, RoomLengthM: 4, RoomWidthM: 5, Occupancy: 2},
			{PowerW: 100, DurationPerDay: 5, DaysPerWeek: 5, RoomLengthM: 2, RoomWidthM: 5, Occupancy: 3},
		},
	}
	energy := models.EnergyBreakdown{TotalEnergyKWh: 150}

	e := NewEngine(DefaultEngineConfig())
	m := e.Metrics(snap, energy)

	assert.InDelta(t, 30.0, m.TotalArea, 1e-9)
	assert.InDelta(t, 5.0, m.TotalOccupancy, 1e-9)
	assert.InDelta(t, 5.0, m.EnergyPerArea, 1e-9)
	assert.InDelta(t, 30.0, m.EnergyPerPerson, 1e-9)
}

func TestMetrics_NegativeDimensions(t *testing.T) {
	snap := models.AuditSnapshot{
		Lighting: []models.LightingItem{{RoomLengthM: -2, RoomWidthM: 3, Occupancy: -4}},
	}

	e := NewEngine(DefaultEngineConfig())
	m := e.Metrics(snap, models.EnergyBreakdown{TotalEnergyKWh: 120})

	assert.InDelta(t, -6.0, m.TotalArea, 1e-9)
	assert.InDelta(t, -4.0, m.TotalOccupancy, 1e-9)
	assert.Zero(t, m.EnergyPerArea)
	assert.Zero(t, m.EnergyPerPerson)
}

func TestMetrics_AllSources(t *testing.T) {
	snap := models.AuditSnapshot{
		AirConditioning: []models.AirConditioningItem{{RoomLengthM: 5, RoomWidthM: 2, Occupancy: 3}},
		Lighting:        []models.LightingItem{{RoomLengthM: 2, RoomWidthM: 5, Occupancy: 1}},
		OtherEquipment:  []models.OtherEquipmentItem{{Occupancy: 1}},
	}

	cfg := DefaultEngineConfig()
	cfg.MetricsSource = MetricsFromAll
	m := NewEngine(cfg).Metrics(snap, models.EnergyBreakdown{TotalEnergyKWh: 100})

	assert.InDelta(t, 20.0, m.TotalArea, 1e-9)
	assert.InDelta(t, 5.0, m.TotalOccupancy, 1e-9)
	assert.InDelta(t, 5.0, m.EnergyPerArea, 1e-9)
	assert.InDelta(t, 20.0, m.EnergyPerPerson, 1e-9)
}

func TestCompute_BuildsReport(t *testing.T) {
	snap := models.AuditSnapshot{
		Audit:           models.AuditRecord{ID: "a1", ClientName: "Acme"},
		AirConditioning: []models.AirConditioningItem{baseAC()},
		Lighting: []models.LightingItem{
			{ID: "l1", RoomName: "Office", LampDescription: "T8", PowerW: 36, Quantity: 10, DurationPerDay: 10, DaysPerWeek: 5},
		},
	}

	e := NewEngine(DefaultEngineConfig())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	report := e.Compute(snap)

	assert.Equal(t, "Acme", report.Audit.ClientName)
	assert.Equal(t, fixed, report.GeneratedAt)
	require.Len(t, report.Items, 2)
	assert.Equal(t, models.CategoryAirConditioning, report.Items[0].Category)
	assert.Equal(t, "Split", report.Items[0].Name)
	assert.InDelta(t, 240.0, report.Items[0].EnergyKWh, 1e-9)
	assert.Equal(t, "l1", report.Items[1].ItemID)
	assert.Equal(t, "T8", report.Items[1].Name)
	assert.NotNil(t, report.Recommendations)
	assert.Empty(t, report.Recommendations)
}

func TestCompute_Deterministic(t *testing.T) {
	snap := models.AuditSnapshot{
		AirConditioning: []models.AirConditioningItem{
			{RoomName: "A", InputPowerW: 6000, EER: 2, DurationPerDay: 8, DaysPerWeek: 5, Remarks: "old unit, 10 years, needs repair"},
		},
	}
	e := NewEngine(DefaultEngineConfig())
	first := e.Compute(snap)
	second := e.Compute(snap)

	assert.Equal(t, first.Energy, second.Energy)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestParseAdjustmentScope(t *testing.T) {
	got, err := ParseAdjustmentScope("")
	require.NoError(t, err)
	assert.Equal(t, AdjustAll, got)

	got, err = ParseAdjustmentScope("air_conditioning")
	require.NoError(t, err)
	assert.Equal(t, AdjustAirConditioning, got)

	_, err = ParseAdjustmentScope("lighting")
	assert.Error(t, err)
}

func TestParseMetricsSource(t *testing.T) {
	got, err := ParseMetricsSource("all")
	require.NoError(t, err)
	assert.Equal(t, MetricsFromAll, got)

	got, err = ParseMetricsSource("")
	require.NoError(t, err)
	assert.Equal(t, MetricsFromLighting, got)

	_, err = ParseMetricsSource("bogus")
	assert.Error(t, err)
}
