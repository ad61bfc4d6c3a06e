// ABOUTME: HTTP handlers for computed energy reports
// ABOUTME: Serves stored audits as JSON or PDF and previews unsaved snapshots

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/ecg-energy/audit-analyzer/models"
	"github.com/ecg-energy/audit-analyzer/render"
)

// unsafeFilename matches characters not allowed in a download filename
var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GetReport computes the energy report for a stored audit
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	_, report, ok := h.storedReport(w, r)
	if !ok {
		return
	}
	h.metrics.ReportGenerated("json")
	h.writeJSON(w, http.StatusOK, report)
}

// GetReportPDF renders the energy report for a stored audit as a PDF document
func (h *Handler) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	snap, report, ok := h.storedReport(w, r)
	if !ok {
		return
	}
	h.writePDF(w, snap, report)
}

// PreviewReport computes a report from a posted snapshot without storing it.
// ?format=pdf returns the PDF document instead of JSON.
func (h *Handler) PreviewReport(w http.ResponseWriter, r *http.Request) {
	var snap models.AuditSnapshot
	if !h.decodeJSON(w, r, &snap) {
		return
	}

	report, err := h.reports.Report(snap)
	if err != nil {
		h.writeStoreError(w, err, "")
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		h.writePDF(w, snap, report)
		return
	}
	h.metrics.ReportGenerated("preview")
	h.writeJSON(w, http.StatusOK, report)
}

// storedReport loads an authorized audit and computes its report.
// On failure the response has been written.
func (h *Handler) storedReport(w http.ResponseWriter, r *http.Request) (models.AuditSnapshot, models.AuditReport, bool) {
	audit, ok := h.authorizedAudit(w, r)
	if !ok {
		return models.AuditSnapshot{}, models.AuditReport{}, false
	}

	snap, err := h.loader.Load(r.Context(), audit.ID)
	if err != nil {
		h.writeStoreError(w, err, "Audit not found")
		return models.AuditSnapshot{}, models.AuditReport{}, false
	}

	report, err := h.reports.Report(snap)
	if err != nil {
		h.writeStoreError(w, err, "")
		return models.AuditSnapshot{}, models.AuditReport{}, false
	}
	return snap, report, true
}

// writePDF renders into a buffer first so render errors can still produce a JSON 500
func (h *Handler) writePDF(w http.ResponseWriter, snap models.AuditSnapshot, report models.AuditReport) {
	var buf bytes.Buffer
	if err := render.WritePDF(&buf, snap, report); err != nil {
		slog.Error("PDF rendering failed", "audit_id", report.Audit.ID, "error", err)
		h.writeError(w, "Failed to render PDF report", http.StatusInternalServerError)
		return
	}
	h.metrics.ReportGenerated("pdf")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdfFilename(report.Audit)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Failed to write PDF response", "error", err)
	}
}

func pdfFilename(audit models.AuditRecord) string {
	name := unsafeFilename.ReplaceAllString(audit.ClientName, "_")
	if name == "" || name == "_" {
		name = "audit"
	}
	return "energy-audit-" + name + ".pdf"
}
