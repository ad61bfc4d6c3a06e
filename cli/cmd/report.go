// ABOUTME: Report command for auditctl CLI
// ABOUTME: Computes an energy report offline from an audit snapshot file

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ecg-energy/audit-analyzer/cli/internal/styles"
	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/render"
	"github.com/ecg-energy/audit-analyzer/services"
)

var (
	pdfPath         string
	metricsSource   string
	adjustmentScope string
	densityRules    bool
)

var reportCmd = &cobra.Command{
	Use:   "report <snapshot.json>",
	Short: "Compute an energy report from a snapshot file",
	Long: `Compute monthly energy estimates, efficiency metrics and recommendations
for an audit snapshot file, without contacting the backend.

The snapshot is the JSON document returned by GET /api/v1/audits/{auditID}.

Exit Codes:
  0  Report computed
  2  Error (unreadable snapshot, invalid flags, PDF failure)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runReport(args[0], os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the PDF report to this path")
	reportCmd.Flags().StringVar(&metricsSource, "metrics-source", "", "Inventories feeding area and occupancy: lighting or all")
	reportCmd.Flags().StringVar(&adjustmentScope, "adjustment-scope", "", "Categories receiving load adjustments: all or air_conditioning")
	reportCmd.Flags().BoolVar(&densityRules, "density-rules", false, "Enable lighting density and per-area rules")
	rootCmd.AddCommand(reportCmd)
}

// runReport computes the report and returns exit code
func runReport(path string, w io.Writer) int {
	engine, err := engineFromFlags()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	snap, err := readSnapshot(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	report := engine.Compute(snap)

	if pdfPath != "" {
		if err := writePDFFile(pdfPath, snap, report); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatReportJSON(report))
	} else {
		fmt.Fprintln(w, formatReportHuman(report))
		if pdfPath != "" {
			fmt.Fprintf(w, "\nPDF written to %s\n", pdfPath)
		}
	}
	return 0
}

func engineFromFlags() (*services.Engine, error) {
	cfg := services.DefaultEngineConfig()

	source, err := services.ParseMetricsSource(metricsSource)
	if err != nil {
		return nil, err
	}
	scope, err := services.ParseAdjustmentScope(adjustmentScope)
	if err != nil {
		return nil, err
	}
	cfg.MetricsSource = source
	cfg.AdjustmentScope = scope
	cfg.DensityRules = densityRules

	return services.NewEngine(cfg), nil
}

func readSnapshot(path string) (models.AuditSnapshot, error) {
	var snap models.AuditSnapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snap, nil
}

func writePDFFile(path string, snap models.AuditSnapshot, report models.AuditReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating PDF file: %w", err)
	}
	if err := render.WritePDF(f, snap, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// formatReportHuman renders the report as a styled terminal summary
func formatReportHuman(report models.AuditReport) string {
	var b strings.Builder

	title := "Energy Audit Report"
	if report.Audit.ClientName != "" {
		title += ": " + report.Audit.ClientName
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	e := report.Energy
	rows := []struct {
		label string
		kwh   float64
	}{
		{"Air Conditioning", e.ACEnergyKWh},
		{"Lighting", e.LightingEnergyKWh},
		{"Other Equipment", e.OtherEnergyKWh},
	}
	var lines []string
	for _, row := range rows {
		share := 0.0
		if e.TotalEnergyKWh > 0 {
			share = row.kwh / e.TotalEnergyKWh * 100
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.KeyStyle.Render(fmt.Sprintf("%-17s", row.label)),
			styles.ShareBar(share, 20),
			fmt.Sprintf("%10.2f kWh/month", row.kwh)))
	}
	lines = append(lines, fmt.Sprintf("%s %s",
		styles.KeyStyle.Render(fmt.Sprintf("%-17s", "Total")),
		styles.ValueStyle.Render(fmt.Sprintf("%.2f kWh/month", e.TotalEnergyKWh))))
	b.WriteString(styles.Panel.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	m := report.Metrics
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf(
		"Area %.2f m²  Occupancy %.0f  Energy/area %.2f kWh/m²  Energy/person %.2f kWh",
		m.TotalArea, m.TotalOccupancy, m.EnergyPerArea, m.EnergyPerPerson)))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("Recommendations"))
	b.WriteString("\n")
	numbered := lipgloss.NewStyle().PaddingLeft(2)
	for i, rec := range report.Recommendations {
		b.WriteString(numbered.Render(fmt.Sprintf("%d. %s", i+1, rec)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatReportJSON formats the report as indented JSON
func formatReportJSON(report models.AuditReport) string {
	data, _ := json.MarshalIndent(report, "", "  ")
	return string(data)
}
