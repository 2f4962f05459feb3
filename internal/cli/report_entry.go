// internal/cli/report_entry.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/report"
	"github.com/probeworks/veritas/internal/stats"
)

func runReport(cmd *cobra.Command, cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not initialized")
	}

	results, err := benchmark.LoadResults(cfg.ResultsPath())
	if err != nil {
		return err
	}
	analysis, err := stats.LoadAnalysis(cfg.ResultsPath())
	if err != nil {
		return err
	}

	if err := report.Write(cfg.ReportFilePath(), results, analysis); err != nil {
		return err
	}
	cmd.Printf("Report written to %s\n", cfg.ReportFilePath())
	return nil
}
