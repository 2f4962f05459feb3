// internal/cli/entries_test.go
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/stats"
)

func testCommand() (*cobra.Command, *bytes.Buffer) {
	b := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(b)
	cmd.SetErr(b)
	return cmd, b
}

func pipelineConfig(t *testing.T) *appconfig.Config {
	t.Helper()
	dir := t.TempDir()
	return &appconfig.Config{
		Model:      appconfig.ModelConfig{Name: "llama3.2"},
		Engine:     appconfig.EngineConfig{URL: "http://localhost:8000"},
		Families:   []string{"f1_units"},
		ResultsDir: filepath.Join(dir, "results"),
		ReportPath: filepath.Join(dir, "docs", "index.html"),
	}
}

// TestSeedAnalyzeReportPipeline drives the three stages that do not need live
// answer systems and checks their artifacts connect.
func TestSeedAnalyzeReportPipeline(t *testing.T) {
	cfg := pipelineConfig(t)

	cmd, out := testCommand()
	if err := runSeed(cmd, cfg); err != nil {
		t.Fatalf("runSeed error: %v", err)
	}
	if !strings.Contains(out.String(), "Seeded demonstration snapshots") {
		t.Fatalf("seed output: %s", out.String())
	}

	results, err := benchmark.LoadResults(cfg.ResultsPath())
	if err != nil {
		t.Fatalf("seeded results unreadable: %v", err)
	}
	if results.Metadata.TotalQueries != 30 || len(results.TaskFamilies) != 5 {
		t.Fatalf("seeded snapshot shape: total=%d families=%d",
			results.Metadata.TotalQueries, len(results.TaskFamilies))
	}

	cmd, out = testCommand()
	if err := runAnalyze(cmd, cfg); err != nil {
		t.Fatalf("runAnalyze error: %v", err)
	}
	if !strings.Contains(out.String(), "RCE_vs_LLM") {
		t.Fatalf("analyze output: %s", out.String())
	}

	analysis, err := stats.LoadAnalysis(cfg.ResultsPath())
	if err != nil {
		t.Fatalf("analysis unreadable: %v", err)
	}
	if got := analysis.OverallAccuracy[providers.SystemRCE].Correct; got != 28 {
		t.Fatalf("seeded rce correct count: %d", got)
	}
	if !analysis.Hypotheses.H3ConsistentImprovement.Supported {
		t.Fatal("seeded data should support consistent improvement")
	}

	cmd, out = testCommand()
	if err := runReport(cmd, cfg); err != nil {
		t.Fatalf("runReport error: %v", err)
	}
	raw, err := os.ReadFile(cfg.ReportFilePath())
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(raw), "93.3%") {
		t.Fatal("report missing headline accuracy")
	}
}

func TestRunAnalyzeWithoutResultsIsActionable(t *testing.T) {
	cfg := pipelineConfig(t)
	cmd, _ := testCommand()

	err := runAnalyze(cmd, cfg)
	if err == nil {
		t.Fatal("expected error without a benchmark snapshot")
	}
	if !strings.Contains(err.Error(), "veritas bench") {
		t.Fatalf("error should point at the bench stage: %v", err)
	}
}

func TestRunReportWithoutAnalysisIsActionable(t *testing.T) {
	cfg := pipelineConfig(t)
	cmd, _ := testCommand()
	if err := runSeed(cmd, cfg); err != nil {
		t.Fatalf("runSeed error: %v", err)
	}
	// Remove the analysis so only the benchmark snapshot remains.
	if err := os.Remove(filepath.Join(cfg.ResultsPath(), stats.AnalysisFileName)); err != nil {
		t.Fatalf("remove analysis: %v", err)
	}

	err := runReport(cmd, cfg)
	if err == nil {
		t.Fatal("expected error without an analysis snapshot")
	}
	if !strings.Contains(err.Error(), "veritas analyze") {
		t.Fatalf("error should point at the analyze stage: %v", err)
	}
}

func TestRunBenchRejectsInvalidConfig(t *testing.T) {
	cmd, _ := testCommand()
	if err := runBench(cmd, nil); err == nil {
		t.Fatal("expected error for missing configuration")
	}

	cfg := pipelineConfig(t)
	cfg.Families = nil
	if err := runBench(cmd, cfg); err == nil {
		t.Fatal("expected error for config without families")
	}
}
