// ABOUTME: PDF rendering of a computed energy audit report
// ABOUTME: A4 document with client info, energy summary, inventory tables and recommendations

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/ecg-energy/audit-analyzer/models"
)

const (
	title    = "Energy Audit Report"
	subtitle = "Comprehensive Energy Analysis and Recommendations"
	footer   = "This report was generated by ECG Energy Audit System"

	marginMM   = 15.0
	lineHeight = 6.0
)

var (
	accent   = [3]int{0, 87, 63}
	headerBg = [3]int{232, 241, 236}
	muted    = [3]int{110, 110, 110}
)

// column is one table column: header label and width in mm
type column struct {
	label string
	width float64
	align string
}

// document wraps fpdf with the cp1252 translator applied to every string
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// WritePDF renders the report. snap supplies the inventory rows; report supplies
// the computed figures. The per-item energy column follows report.Items order.
func WritePDF(w io.Writer, snap models.AuditSnapshot, report models.AuditReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	generated := report.GeneratedAt.Format("2006-01-02")
	pdf.SetTitle(title, true)
	pdf.SetAuthor(report.Audit.AuditorName, true)
	pdf.SetCreator("audit-analyzer", true)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pageW, _ := pdf.GetPageSize()
		half := (pageW - 2*marginMM) / 2
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(muted[0], muted[1], muted[2])
		pdf.CellFormat(half, 5, d.tr(footer+" \u2022 "+generated), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	d.header()
	d.clientInfo(report.Audit, generated)
	d.energySummary(report.Energy)
	d.efficiency(report.Metrics)

	energy := itemEnergy(report.Items)
	d.sectionTitle("Equipment Inventory")
	d.airConditioningTable(snap.AirConditioning, energy[models.CategoryAirConditioning])
	d.lightingTable(snap.Lighting, energy[models.CategoryLighting])
	d.otherEquipmentTable(snap.OtherEquipment, energy[models.CategoryOtherEquipment])

	d.recommendations(report.Recommendations)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}

func (d *document) header() {
	pdf := d.pdf
	pdf.SetFillColor(accent[0], accent[1], accent[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, d.tr(title), "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, d.tr(subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(6)
}

func (d *document) clientInfo(audit models.AuditRecord, date string) {
	rows := [][2]string{
		{"Client:", audit.ClientName},
		{"Location:", audit.Location},
		{"Branch:", audit.Branch},
		{"Auditor:", audit.AuditorName},
		{"Date:", date},
	}
	pdf := d.pdf
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, lineHeight, d.tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, lineHeight, d.tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (d *document) sectionTitle(text string) {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.CellFormat(0, 9, d.tr(text), "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

func (d *document) energySummary(e models.EnergyBreakdown) {
	d.sectionTitle("Energy Consumption Summary")
	d.figures([][2]string{
		{"Air Conditioning", kwhMonth(e.ACEnergyKWh)},
		{"Lighting", kwhMonth(e.LightingEnergyKWh)},
		{"Other Equipment", kwhMonth(e.OtherEnergyKWh)},
		{"Total Energy Consumption", kwhMonth(e.TotalEnergyKWh)},
	})
}

func (d *document) efficiency(m models.EfficiencyMetrics) {
	d.sectionTitle("Efficiency Metrics")
	d.figures([][2]string{
		{"Total Area", fmt.Sprintf("%.2f m\u00b2", m.TotalArea)},
		{"Total Occupancy", fmt.Sprintf("%.0f people", m.TotalOccupancy)},
		{"Energy per Area", fmt.Sprintf("%.2f kWh/m\u00b2", m.EnergyPerArea)},
		{"Energy per Person", fmt.Sprintf("%.2f kWh/person", m.EnergyPerPerson)},
	})
}

// figures prints label/value pairs two per row
func (d *document) figures(pairs [][2]string) {
	pdf := d.pdf
	pageW, _ := pdf.GetPageSize()
	half := (pageW - 2*marginMM) / 2
	for i, p := range pairs {
		endRow := i%2 == 1 || i == len(pairs)-1
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(muted[0], muted[1], muted[2])
		x, y := pdf.GetXY()
		pdf.CellFormat(half, 5, d.tr(p[0]), "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(half, 7, d.tr(p[1]), "", 0, "L", false, 0, "")
		if endRow {
			pdf.Ln(9)
		} else {
			pdf.SetXY(x+half, y)
		}
	}
	pdf.Ln(2)
}

func (d *document) table(caption string, cols []column, rows [][]string) {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, d.tr(caption), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerBg[0], headerBg[1], headerBg[2])
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, d.tr(c.label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(rows) == 0 {
		pdf.CellFormat(totalWidth(cols), 7, d.tr("No items recorded"), "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		for i, c := range cols {
			pdf.CellFormat(c.width, 7, d.tr(row[i]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (d *document) airConditioningTable(items []models.AirConditioningItem, energy []float64) {
	cols := []column{
		{"Room", 50, "L"}, {"Type", 30, "L"}, {"Power (W)", 25, "R"},
		{"Hours/Day", 25, "R"}, {"EER", 20, "R"}, {"kWh/month", 30, "R"},
	}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{
			it.RoomName, it.TypeLabel(), number(it.InputPowerW),
			number(it.DurationPerDay), number(it.EER), energyAt(energy, i),
		})
	}
	d.table("Air Conditioning Units", cols, rows)
}

func (d *document) lightingTable(items []models.LightingItem, energy []float64) {
	cols := []column{
		{"Room", 55, "L"}, {"Power (W)", 30, "R"}, {"Quantity", 25, "R"},
		{"Hours/Day", 30, "R"}, {"kWh/month", 40, "R"},
	}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{
			it.RoomName, number(it.PowerW * quantity(it.Quantity)), number(it.Quantity),
			number(it.DurationPerDay), energyAt(energy, i),
		})
	}
	d.table("Lighting Equipment", cols, rows)
}

func (d *document) otherEquipmentTable(items []models.OtherEquipmentItem, energy []float64) {
	cols := []column{
		{"Room", 45, "L"}, {"Equipment", 50, "L"}, {"Power (W)", 25, "R"},
		{"Quantity", 20, "R"}, {"kWh/month", 40, "R"},
	}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{
			it.RoomName, it.EquipmentName, number(it.PowerW),
			number(it.Quantity), energyAt(energy, i),
		})
	}
	d.table("Other Equipment", cols, rows)
}

func (d *document) recommendations(recs []string) {
	d.sectionTitle("Energy Efficiency Recommendations")
	pdf := d.pdf
	if len(recs) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, lineHeight, d.tr("No recommendations for this audit."), "", "L", false)
		return
	}
	for i, rec := range recs {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(accent[0], accent[1], accent[2])
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("Recommendation %d", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, lineHeight-1, d.tr(rec), "", "L", false)
		pdf.Ln(2)
	}
}

// itemEnergy groups per-item energy by category, preserving order
func itemEnergy(items []models.ItemEnergy) map[models.Category][]float64 {
	out := make(map[models.Category][]float64, len(models.Categories))
	for _, it := range items {
		out[it.Category] = append(out[it.Category], it.EnergyKWh)
	}
	return out
}

func energyAt(energy []float64, i int) string {
	if i >= len(energy) {
		return "-"
	}
	return strconv.FormatFloat(energy[i], 'f', 2, 64)
}

func kwhMonth(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + " kWh/month"
}

// number prints whole values without decimals
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quantity(q float64) float64 {
	if q == 0 {
		return 1
	}
	return q
}

func totalWidth(cols []column) float64 {
	var w float64
	for _, c := range cols {
		w += c.width
	}
	return w
}
