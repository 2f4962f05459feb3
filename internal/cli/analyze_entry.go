// internal/cli/analyze_entry.go
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/stats"
)

func runAnalyze(cmd *cobra.Command, cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not initialized")
	}

	results, err := benchmark.LoadResults(cfg.ResultsPath())
	if err != nil {
		return err
	}

	analysis, err := stats.Analyze(results)
	if err != nil {
		return err
	}
	if DebugEnabled() {
		pp.Println(analysis)
	}

	if err := stats.WriteAnalysis(cfg.ResultsPath(), analysis); err != nil {
		return err
	}

	cmd.Printf("Analysis written to %s\n", filepath.Join(cfg.ResultsPath(), stats.AnalysisFileName))
	for _, system := range providers.Systems() {
		acc := analysis.OverallAccuracy[system]
		cmd.Printf("  %-8s %d/%d (%.1f%%)\n", system, acc.Correct, acc.Total, acc.Accuracy*100)
	}
	for _, key := range []string{stats.ComparisonRCEvsLLM, stats.ComparisonRCEvsRAG} {
		es := analysis.EffectSizes[key]
		cmd.Printf("  %s: h = %.3f (%s)\n", key, es.CohensH, es.Interpretation)
	}
	return nil
}
