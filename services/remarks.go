// ABOUTME: Keyword heuristics that turn free-text equipment remarks into recommendations
// ABOUTME: Ordered rule table evaluated with case-insensitive substring matching

package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ecg-energy/audit-analyzer/models"
)

var (
	negativityMarkers  = []string{"not", "no", "never", "bad", "poor", "issue"}
	urgencyMarkers     = []string{"urgent", "immediate", "asap", "critical", "important"}
	ageWords           = []string{"old", "age", "years"}
	maintenanceMarkers = []string{"maintenance", "repair", "fix", "broken", "damaged"}

	integerPattern = regexp.MustCompile(`\d+`)
)

// minReplacementAge is the age in years above which replacement is suggested
const minReplacementAge = 5

// RemarkRule is one keyword group of the remark analyzer.
// An empty Category matches every category; an empty EquipmentMatch matches any equipment name.
type RemarkRule struct {
	Name           string
	Category       models.Category
	EquipmentMatch string
	Keywords       []string
	Template       string
}

func (r RemarkRule) applies(text, category, equipment string) bool {
	if r.Category != "" && string(r.Category) != category {
		return false
	}
	if r.EquipmentMatch != "" && !strings.Contains(equipment, r.EquipmentMatch) {
		return false
	}
	return containsAny(text, r.Keywords)
}

// defaultConcernRules are evaluated first, in order: category groups then equipment-gated groups
func defaultConcernRules() []RemarkRule {
	return []RemarkRule{
		{
			Name:     "ac-comfort",
			Category: models.CategoryAirConditioning,
			Keywords: []string{"hot", "cold", "warm", "temperature", "uncomfortable", "humid"},
			Template: "Review air conditioning temperature settings and capacity in {room}: occupants reported \"{remark}\".",
		},
		{
			Name:     "ac-air-quality",
			Category: models.CategoryAirConditioning,
			Keywords: []string{"smell", "odor", "dust", "stuffy", "air quality"},
			Template: "Clean filters and check ventilation of the air conditioning in {room} to address air quality: \"{remark}\".",
		},
		{
			Name:     "ac-cost",
			Category: models.CategoryAirConditioning,
			Keywords: []string{"expensive", "cost", "bill", "energy", "consumption", "inefficient"},
			Template: "Evaluate the efficiency of the air conditioning in {room} to reduce operating cost: \"{remark}\".",
		},
		{
			Name:     "lighting-illumination",
			Category: models.CategoryLighting,
			Keywords: []string{"dim", "dark", "glare", "bright"},
			Template: "Assess illumination levels in {room} and adjust fittings or layout: \"{remark}\".",
		},
		{
			Name:     "lighting-failure",
			Category: models.CategoryLighting,
			Keywords: []string{"flicker", "burnt", "fused", "fault"},
			Template: "Replace faulty lamps in {room} with LED equivalents: \"{remark}\".",
		},
		{
			Name:     "lighting-usage",
			Category: models.CategoryLighting,
			Keywords: []string{"left on", "always on", "daylight", "window"},
			Template: "Install occupancy sensors or daylight controls in {room} to avoid wasted lighting: \"{remark}\".",
		},
		{
			Name:     "other-heat-noise",
			Category: models.CategoryOtherEquipment,
			Keywords: []string{"hot", "heat", "noise", "noisy", "loud", "vibrat"},
			Template: "Inspect {equipment} in {room} for overheating or mechanical wear: \"{remark}\".",
		},
		{
			Name:     "other-usage",
			Category: models.CategoryOtherEquipment,
			Keywords: []string{"always on", "24/7", "unused", "idle"},
			Template: "Schedule {equipment} in {room} to switch off when not needed: \"{remark}\".",
		},
		{
			Name:           "computer",
			Category:       models.CategoryOtherEquipment,
			EquipmentMatch: "computer",
			Keywords:       []string{"slow", "left on", "standby", "overnight"},
			Template:       "Enable power management on computers in {room} and shut them down after hours: \"{remark}\".",
		},
		{
			Name:           "printer",
			Category:       models.CategoryOtherEquipment,
			EquipmentMatch: "printer",
			Keywords:       []string{"jam", "standby", "idle", "toner"},
			Template:       "Service printers in {room} and enable sleep mode to cut standby consumption: \"{remark}\".",
		},
		{
			Name:           "refrigerator",
			Category:       models.CategoryOtherEquipment,
			EquipmentMatch: "refrigerator",
			Keywords:       []string{"frost", "ice", "leak", "door", "seal", "warm"},
			Template:       "Check refrigerator door seals and defrost the unit in {room}: \"{remark}\".",
		},
	}
}

const (
	urgentTemplate      = "Urgent attention required for {equipment} in {room}: \"{remark}\"."
	ageTemplate         = "Consider replacing {equipment} in {room}, which is about {age} years old, with a more energy-efficient model."
	maintenanceTemplate = "Schedule maintenance for {equipment} in {room}: \"{remark}\"."
)

// RemarkAnalyzer derives recommendation sentences from remark text
type RemarkAnalyzer struct {
	rules []RemarkRule
}

// NewRemarkAnalyzer creates an analyzer with the default rule table
func NewRemarkAnalyzer() *RemarkAnalyzer {
	return &RemarkAnalyzer{rules: defaultConcernRules()}
}

// Rules returns a copy of the concern rule table
func (a *RemarkAnalyzer) Rules() []RemarkRule {
	out := make([]RemarkRule, len(a.rules))
	copy(out, a.rules)
	return out
}

// Analyze returns every recommendation the remark triggers, in rule order.
// Blank remarks yield nil.
func (a *RemarkAnalyzer) Analyze(remark string, category models.Category, room, equipmentName string) []string {
	trimmed := strings.TrimSpace(remark)
	if trimmed == "" {
		return nil
	}

	text := strings.ToLower(trimmed)
	equipment := strings.ToLower(equipmentName)

	label := equipmentName
	if label == "" {
		label = strings.ToLower(category.Label())
	}
	replacer := strings.NewReplacer(
		"{room}", room,
		"{remark}", trimmed,
		"{equipment}", label,
	)

	var out []string
	for _, rule := range a.rules {
		if rule.applies(text, string(category), equipment) {
			out = append(out, replacer.Replace(rule.Template))
		}
	}

	maintenance := containsAny(text, maintenanceMarkers)

	if containsAny(text, urgencyMarkers) && (containsAny(text, negativityMarkers) || maintenance) {
		out = append(out, replacer.Replace(urgentTemplate))
	}

	if age, ok := parseAge(text); ok && age > minReplacementAge {
		ageReplacer := strings.NewReplacer("{age}", strconv.Itoa(age))
		out = append(out, replacer.Replace(ageReplacer.Replace(ageTemplate)))
	}

	if maintenance {
		out = append(out, replacer.Replace(maintenanceTemplate))
	}

	return out
}

// parseAge returns the first integer of text when it also mentions age
func parseAge(text string) (int, bool) {
	if !containsAny(text, ageWords) {
		return 0, false
	}
	match := integerPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
