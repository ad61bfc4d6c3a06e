// ABOUTME: Entry point for the auditctl CLI
// ABOUTME: Command-line tool for offline reports and backend checks

package main

import (
	"fmt"
	"os"

	"github.com/ecg-energy/audit-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
