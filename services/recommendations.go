// ABOUTME: Recommendation assembly from remark findings and threshold rules
// ABOUTME: Produces the ordered recommendation list of an audit report

package services

import (
	"fmt"

	"github.com/ecg-energy/audit-analyzer/models"
)

// Recommendations returns remark findings followed by threshold findings.
// Remark findings follow category order then list order.
func (e *Engine) Recommendations(snap models.AuditSnapshot, metrics models.EfficiencyMetrics) []string {
	var recs []string

	for _, it := range snap.Items() {
		u := it.Usage()
		recs = append(recs, e.remarks.Analyze(u.Remarks, it.Category(), u.RoomName, u.EquipmentName)...)
	}

	recs = append(recs, e.airConditioningFindings(snap.AirConditioning)...)

	if total := otherEquipmentPower(snap.OtherEquipment); total > e.cfg.OtherEquipmentPowerW {
		recs = append(recs, fmt.Sprintf(
			"Total other equipment load is %.0f W (above %.0f W). Optimize usage schedules and replace inefficient appliances.",
			total, e.cfg.OtherEquipmentPowerW))
	}

	if total := lightingPower(snap.Lighting); total > e.cfg.LightingPowerW {
		recs = append(recs, fmt.Sprintf(
			"Total lighting load is %.0f W (above %.0f W). Consider upgrading to LED lighting.",
			total, e.cfg.LightingPowerW))
	}

	if e.cfg.DensityRules {
		recs = append(recs, e.densityFindings(snap.Lighting, metrics)...)
	}

	return recs
}

func (e *Engine) airConditioningFindings(items []models.AirConditioningItem) []string {
	// Skip on empty input
	if len(items) == 0 {
		return nil
	}

	var out []string
	var eerSum float64
	lowEER, highPower := 0, 0
	for _, it := range items {
		eerSum += it.EER
		if it.EER < e.cfg.LowEERThreshold {
			lowEER++
		}
		if it.InputPowerW > e.cfg.HighACPowerW {
			highPower++
		}
	}

	if eerSum/float64(len(items)) < e.cfg.LowEERThreshold {
		out = append(out, fmt.Sprintf(
			"Consider upgrading air conditioning units to more energy-efficient models with higher EER ratings (%s below EER %.1f).",
			countUnits(lowEER, "unit"), e.cfg.LowEERThreshold))
	}

	if highPower > 0 {
		verb := "draw"
		if highPower == 1 {
			verb = "draws"
		}
		out = append(out, fmt.Sprintf(
			"%s %s more than %.0f W. Implement power management such as timers and setpoint limits.",
			countUnits(highPower, "air conditioning unit"), verb, e.cfg.HighACPowerW))
	}

	return out
}

// densityFindings applies the power and energy density rules
func (e *Engine) densityFindings(lighting []models.LightingItem, metrics models.EfficiencyMetrics) []string {
	var out []string

	var densitySum float64
	withArea := 0
	for _, it := range lighting {
		area := it.RoomLengthM * it.RoomWidthM
		if area <= 0 {
			continue
		}
		densitySum += it.PowerW * quantityOrOne(it.Quantity) / area
		withArea++
	}
	if withArea > 0 && densitySum/float64(withArea) > e.cfg.LightingDensityWPerM2 {
		out = append(out, "Consider upgrading to LED lighting to reduce power density and energy consumption.")
	}

	if metrics.EnergyPerArea > e.cfg.EnergyPerAreaKWhPerM2 {
		out = append(out, "Implement energy management systems to optimize energy usage per area.")
	}
	if metrics.EnergyPerPerson > e.cfg.EnergyPerPersonKWh {
		out = append(out, "Consider implementing occupancy-based controls to reduce energy waste in low-occupancy periods.")
	}

	return out
}

func otherEquipmentPower(items []models.OtherEquipmentItem) float64 {
	var total float64
	for _, it := range items {
		total += it.PowerW * quantityOrOne(it.Quantity)
	}
	return total
}

func lightingPower(items []models.LightingItem) float64 {
	var total float64
	for _, it := range items {
		total += it.PowerW * quantityOrOne(it.Quantity)
	}
	return total
}

// countUnits formats "1 unit" or "n units"
func countUnits(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func quantityOrOne(q float64) float64 {
	if q == 0 {
		return 1
	}
	return q
}
