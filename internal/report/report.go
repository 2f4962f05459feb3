// internal/report/report.go
// Package report renders the benchmark results and statistical analysis as a
// standalone HTML page.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/logging"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/stats"
)

// ReportData is the view model handed to the page template.
type ReportData struct {
	Title         string
	RunID         string
	ExecutionDate string
	AnalysisDate  string
	TotalQueries  int
	FamilyCount   int
	Overview      []StatCard
	Hypotheses    []HypothesisRow
	Overall       []SystemRow
	Families      []FamilyRow
	EffectSizes   []EffectCard
	ChartJSON     template.JS
}

// StatCard is one headline figure in the overview strip.
type StatCard struct {
	Value string
	Label string
}

// HypothesisRow is one validated hypothesis with its verdict.
type HypothesisRow struct {
	ID        string
	Claim     string
	Supported bool
	Detail    string
}

// SystemRow is one system's overall accuracy line.
type SystemRow struct {
	System   string
	Correct  int
	Total    int
	Accuracy string
	Width    float64
	Lead     bool
}

// FamilyRow is one task family's accuracy across the three systems.
type FamilyRow struct {
	Family   string
	Queries  int
	LLM      string
	RAG      string
	RCE      string
	Improved bool
}

// EffectCard is one Cohen's h comparison.
type EffectCard struct {
	Comparison     string
	H              string
	Interpretation string
}

type chartSeries struct {
	Families []string  `json:"families"`
	LLM      []float64 `json:"llm"`
	RAG      []float64 `json:"rag"`
	RCE      []float64 `json:"rce"`
}

// Generate renders the report page from the two persisted snapshots.
func Generate(results benchmark.Results, analysis stats.Analysis) (string, error) {
	data, err := buildViewModel(results, analysis)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering report: %w", err)
	}
	return buf.String(), nil
}

// Write renders the report and writes it to path, creating parent directories.
func Write(path string, results benchmark.Results, analysis stats.Analysis) error {
	page, err := Generate(results, analysis)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	logging.LogEvent("report written to %s", path)
	return nil
}

func buildViewModel(results benchmark.Results, analysis stats.Analysis) (ReportData, error) {
	data := ReportData{
		Title:         "RCE-LLM Empirical Validation",
		RunID:         results.Metadata.RunID,
		ExecutionDate: results.Metadata.ExecutionDate,
		AnalysisDate:  analysis.Metadata.AnalysisDate,
		TotalQueries:  results.Metadata.TotalQueries,
		FamilyCount:   len(analysis.TaskFamilyAccuracy),
	}

	rceOverall := analysis.OverallAccuracy[providers.SystemRCE]
	data.Overview = []StatCard{
		{Value: fmt.Sprintf("%d", data.TotalQueries), Label: "Total Queries"},
		{Value: fmt.Sprintf("%d", data.FamilyCount), Label: "Task Families"},
		{Value: "2", Label: "Baseline Systems"},
		{Value: percent(rceOverall.Accuracy), Label: "RCE-LLM Accuracy"},
	}

	hyp := analysis.Hypotheses
	data.Hypotheses = []HypothesisRow{
		{
			ID:        "H1",
			Claim:     "RCE-LLM outperforms the vanilla LLM",
			Supported: hyp.H1RCEBetterThanLLM.Supported,
			Detail:    fmt.Sprintf("%+.1f%% relative accuracy", hyp.H1RCEBetterThanLLM.ImprovementPercentage),
		},
		{
			ID:        "H2",
			Claim:     "RCE-LLM outperforms the retrieval baseline",
			Supported: hyp.H2RCEBetterThanRAG.Supported,
			Detail:    fmt.Sprintf("%+.1f%% relative accuracy", hyp.H2RCEBetterThanRAG.ImprovementPercentage),
		},
		{
			ID:        "H3",
			Claim:     "Improvement holds across every task family",
			Supported: hyp.H3ConsistentImprovement.Supported,
			Detail: fmt.Sprintf("%d/%d families improved",
				hyp.H3ConsistentImprovement.FamiliesImproved, hyp.H3ConsistentImprovement.TotalFamilies),
		},
		{
			ID:        "H4",
			Claim:     "Coherence validation helps factual grounding",
			Supported: hyp.H4CoherenceImprovesFactual.Supported,
			Detail:    "factual family comparison",
		},
	}

	best := providers.SystemLLM
	for _, system := range providers.Systems() {
		if analysis.OverallAccuracy[system].Accuracy > analysis.OverallAccuracy[best].Accuracy {
			best = system
		}
	}
	for _, system := range providers.Systems() {
		acc := analysis.OverallAccuracy[system]
		data.Overall = append(data.Overall, SystemRow{
			System:   string(system),
			Correct:  acc.Correct,
			Total:    acc.Total,
			Accuracy: percent(acc.Accuracy),
			Width:    acc.Accuracy * 100,
			Lead:     system == best,
		})
	}

	chart := chartSeries{}
	for _, family := range stats.FamilyNames(analysis) {
		acc := analysis.TaskFamilyAccuracy[family]
		rce := acc[providers.SystemRCE].Accuracy
		data.Families = append(data.Families, FamilyRow{
			Family:   family,
			Queries:  results.TaskFamilies[family].TotalQueries,
			LLM:      percent(acc[providers.SystemLLM].Accuracy),
			RAG:      percent(acc[providers.SystemRAG].Accuracy),
			RCE:      percent(rce),
			Improved: rce > acc[providers.SystemLLM].Accuracy && rce > acc[providers.SystemRAG].Accuracy,
		})
		chart.Families = append(chart.Families, family)
		chart.LLM = append(chart.LLM, acc[providers.SystemLLM].Accuracy)
		chart.RAG = append(chart.RAG, acc[providers.SystemRAG].Accuracy)
		chart.RCE = append(chart.RCE, rce)
	}

	for _, key := range []string{stats.ComparisonRCEvsLLM, stats.ComparisonRCEvsRAG} {
		es := analysis.EffectSizes[key]
		data.EffectSizes = append(data.EffectSizes, EffectCard{
			Comparison:     key,
			H:              fmt.Sprintf("%.3f", es.CohensH),
			Interpretation: es.Interpretation,
		})
	}

	payload, err := json.Marshal(chart)
	if err != nil {
		return ReportData{}, fmt.Errorf("error encoding chart data: %w", err)
	}
	data.ChartJSON = template.JS(payload)

	return data, nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
