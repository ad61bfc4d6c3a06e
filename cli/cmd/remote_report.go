// ABOUTME: Remote report command for auditctl CLI
// ABOUTME: Fetches a stored audit's report or PDF from the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ecg-energy/audit-analyzer/cli/internal/client"
)

var (
	authToken     string
	remotePDFPath string
)

var remoteReportCmd = &cobra.Command{
	Use:   "remote-report <auditID>",
	Short: "Fetch a stored audit's report from the backend",
	Long: `Fetch the computed report for a stored audit from the backend.

With --pdf the PDF report is downloaded to the given path instead.

Exit Codes:
  0  Report fetched
  2  Error (missing token, backend unreachable, access denied)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRemoteReport(ctx, args[0], os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	remoteReportCmd.Flags().StringVar(&authToken, "token", "", "Session token (overrides AUDIT_TOKEN)")
	remoteReportCmd.Flags().StringVar(&remotePDFPath, "pdf", "", "Download the PDF report to this path")
	rootCmd.AddCommand(remoteReportCmd)
}

// GetToken returns the session token from flag or env
func GetToken() string {
	if authToken != "" {
		return authToken
	}
	return os.Getenv("AUDIT_TOKEN")
}

// runRemoteReport fetches the report and returns exit code
func runRemoteReport(ctx context.Context, auditID string, w io.Writer) int {
	token := GetToken()
	if token == "" {
		fmt.Fprintln(w, "Error: a session token is required (--token or AUDIT_TOKEN)")
		return 2
	}
	c := client.New(GetAPIURL()).WithToken(token)

	if remotePDFPath != "" {
		if err := downloadPDF(ctx, c, auditID, remotePDFPath); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(w, "PDF written to %s\n", remotePDFPath)
		return 0
	}

	report, err := c.Report(ctx, auditID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatReportJSON(*report))
	} else {
		fmt.Fprintln(w, formatReportHuman(*report))
	}
	return 0
}

func downloadPDF(ctx context.Context, c *client.Client, auditID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating PDF file: %w", err)
	}
	if err := c.ReportPDF(ctx, auditID, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
