// ABOUTME: Tests for PDF report rendering
// ABOUTME: Verifies a well-formed document is produced for full and empty audits

package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/services"
)

func sampleSnapshot() models.AuditSnapshot {
	return models.AuditSnapshot{
		Audit: models.AuditRecord{
			ID:          "a-1",
			ClientName:  "Accra Central Branch",
			Branch:      "Retail",
			Location:    "Ground floor",
			AuditorName: "K. Mensah",
		},
		AirConditioning: []models.AirConditioningItem{
			{RoomName: "Banking hall", ACType: models.ACTypeSplit, InputPowerW: 6000, EER: 2.5, DurationPerDay: 10, DaysPerWeek: 6, Quantity: 2, RoomLengthM: 12, RoomWidthM: 8, Occupancy: 20, Remarks: "Unit is noisy and broken, urgent"},
		},
		Lighting: []models.LightingItem{
			{RoomName: "Banking hall", PowerW: 36, Quantity: 40, DurationPerDay: 10, DaysPerWeek: 6, RoomLengthM: 12, RoomWidthM: 8, Occupancy: 20, LampDescription: "T8 fluorescent"},
		},
		OtherEquipment: []models.OtherEquipmentItem{
			{RoomName: "Café", EquipmentName: "Refrigerator", PowerW: 300, Quantity: 1, DurationPerDay: 24, DaysPerWeek: 7},
		},
	}
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	snap := sampleSnapshot()
	engine := services.NewEngine(services.DefaultEngineConfig())
	report := engine.Compute(snap)
	report.GeneratedAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WritePDF(&buf, snap, report); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("Output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("Output is missing the PDF trailer")
	}
}

func TestWritePDF_EmptyAudit(t *testing.T) {
	engine := services.NewEngine(services.DefaultEngineConfig())
	snap := models.AuditSnapshot{Audit: models.AuditRecord{ClientName: "Empty"}}
	report := engine.Compute(snap)

	var buf bytes.Buffer
	if err := WritePDF(&buf, snap, report); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected non-empty output")
	}
}

func TestWritePDF_ManyRecommendationsPaginate(t *testing.T) {
	snap := sampleSnapshot()
	report := services.NewEngine(services.DefaultEngineConfig()).Compute(snap)
	for i := 0; i < 80; i++ {
		report.Recommendations = append(report.Recommendations, "Schedule maintenance for Split in Banking hall: \"filter dirty\".")
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, snap, report); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if bytes.Count(buf.Bytes(), []byte("/Type /Page\n")) < 2 {
		t.Error("Expected the document to span more than one page")
	}
}

func TestItemEnergyGroupsByCategory(t *testing.T) {
	got := itemEnergy([]models.ItemEnergy{
		{Category: models.CategoryAirConditioning, EnergyKWh: 1},
		{Category: models.CategoryLighting, EnergyKWh: 2},
		{Category: models.CategoryLighting, EnergyKWh: 3},
	})
	if len(got[models.CategoryLighting]) != 2 || got[models.CategoryLighting][1] != 3 {
		t.Errorf("Lighting energies = %v, want [2 3]", got[models.CategoryLighting])
	}
	if energyAt(got[models.CategoryOtherEquipment], 0) != "-" {
		t.Error("Missing energy should render as -")
	}
}
