// internal/stats/stats.go
// Package stats derives accuracy figures, Cohen's h effect sizes, and the
// hypothesis summary from a persisted benchmark snapshot. The analysis is a
// pure fold over the snapshot: responses are recounted rather than trusting
// the accuracies stored by the bench stage.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/logging"
	"github.com/probeworks/veritas/internal/providers"
)

// AnalysisFileName is the snapshot consumed by the report stage.
const AnalysisFileName = "statistical_analysis.json"

// SummaryFileName is the human-readable companion to the analysis snapshot.
const SummaryFileName = "statistical_analysis.md"

// factualFamily is the task family backing the factual-grounding hypothesis.
const factualFamily = "f5_factual"

// CohensH computes Cohen's effect size for two proportions:
// h = 2*asin(sqrt(p1)) - 2*asin(sqrt(p2)). Both inputs must lie in [0, 1].
func CohensH(p1, p2 float64) (float64, error) {
	if p1 < 0 || p1 > 1 || p2 < 0 || p2 > 1 {
		return 0, fmt.Errorf("proportions must be in [0, 1], got p1=%v p2=%v", p1, p2)
	}
	return 2*math.Asin(math.Sqrt(p1)) - 2*math.Asin(math.Sqrt(p2)), nil
}

// InterpretH buckets an effect size magnitude using Cohen's conventional
// thresholds. Boundaries belong to the larger bucket.
func InterpretH(h float64) string {
	switch abs := math.Abs(h); {
	case abs < 0.2:
		return "negligible"
	case abs < 0.5:
		return "small"
	case abs < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// Analyze folds a benchmark snapshot into the statistical summary.
func Analyze(results benchmark.Results) (Analysis, error) {
	if len(results.TaskFamilies) == 0 {
		return Analysis{}, errors.New("benchmark results contain no task families")
	}

	analysis := Analysis{
		Metadata: Metadata{
			AnalysisDate: time.Now().Format(time.RFC3339),
			RunID:        results.Metadata.RunID,
		},
		OverallAccuracy:    make(map[providers.System]benchmark.Accuracy),
		TaskFamilyAccuracy: make(map[string]map[providers.System]benchmark.Accuracy),
		EffectSizes:        make(map[string]EffectSize),
	}

	overall := newCounters()
	for family, familyResults := range results.TaskFamilies {
		counters := newCounters()
		for _, q := range familyResults.Queries {
			for _, resp := range q.Systems {
				entry := counters[resp.System]
				entry.Total++
				if resp.Correct {
					entry.Correct++
				}
				counters[resp.System] = entry

				total := overall[resp.System]
				total.Total++
				if resp.Correct {
					total.Correct++
				}
				overall[resp.System] = total
			}
		}
		analysis.TaskFamilyAccuracy[family] = finalize(counters)
	}
	analysis.OverallAccuracy = finalize(overall)

	llm := analysis.OverallAccuracy[providers.SystemLLM].Accuracy
	rag := analysis.OverallAccuracy[providers.SystemRAG].Accuracy
	rce := analysis.OverallAccuracy[providers.SystemRCE].Accuracy

	for key, baseline := range map[string]float64{
		ComparisonRCEvsLLM: llm,
		ComparisonRCEvsRAG: rag,
	} {
		h, err := CohensH(rce, baseline)
		if err != nil {
			return Analysis{}, fmt.Errorf("effect size %s: %w", key, err)
		}
		analysis.EffectSizes[key] = EffectSize{CohensH: h, Interpretation: InterpretH(h)}
	}

	analysis.Hypotheses = Hypotheses{
		H1RCEBetterThanLLM:         overallHypothesis(rce, llm),
		H2RCEBetterThanRAG:         overallHypothesis(rce, rag),
		H3ConsistentImprovement:    consistency(analysis.TaskFamilyAccuracy),
		H4CoherenceImprovesFactual: factual(analysis.TaskFamilyAccuracy),
	}

	return analysis, nil
}

func newCounters() map[providers.System]benchmark.Accuracy {
	counters := make(map[providers.System]benchmark.Accuracy, len(providers.Systems()))
	for _, system := range providers.Systems() {
		counters[system] = benchmark.Accuracy{}
	}
	return counters
}

// finalize computes the accuracy ratio for each counter. A zero total yields
// an accuracy of zero, never a division.
func finalize(counters map[providers.System]benchmark.Accuracy) map[providers.System]benchmark.Accuracy {
	for system, entry := range counters {
		if entry.Total > 0 {
			entry.Accuracy = float64(entry.Correct) / float64(entry.Total)
		}
		counters[system] = entry
	}
	return counters
}

func overallHypothesis(treatment, baseline float64) OverallHypothesis {
	hyp := OverallHypothesis{Supported: treatment > baseline}
	if baseline > 0 {
		hyp.ImprovementPercentage = (treatment - baseline) / baseline * 100
	}
	return hyp
}

// consistency checks that the system under test strictly beats both baselines
// in every task family. A single non-improving family breaks support.
func consistency(families map[string]map[providers.System]benchmark.Accuracy) ConsistencyHypothesis {
	hyp := ConsistencyHypothesis{TotalFamilies: len(families)}
	for _, acc := range families {
		rce := acc[providers.SystemRCE].Accuracy
		if rce > acc[providers.SystemLLM].Accuracy && rce > acc[providers.SystemRAG].Accuracy {
			hyp.FamiliesImproved++
		}
	}
	hyp.Supported = hyp.FamiliesImproved == hyp.TotalFamilies
	return hyp
}

func factual(families map[string]map[providers.System]benchmark.Accuracy) FactualHypothesis {
	acc, ok := families[factualFamily]
	if !ok {
		return FactualHypothesis{}
	}
	rce := acc[providers.SystemRCE].Accuracy
	return FactualHypothesis{
		Supported: rce > acc[providers.SystemLLM].Accuracy && rce > acc[providers.SystemRAG].Accuracy,
	}
}

// WriteAnalysis persists the analysis snapshot plus its markdown summary.
func WriteAnalysis(resultsDir string, analysis Analysis) error {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("error creating results directory: %w", err)
	}

	path := filepath.Join(resultsDir, AnalysisFileName)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating analysis file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(analysis); err != nil {
		return fmt.Errorf("error writing analysis to file: %w", err)
	}
	logging.LogEvent("statistical analysis written to %s", path)

	summaryPath := filepath.Join(resultsDir, SummaryFileName)
	if err := os.WriteFile(summaryPath, []byte(Summary(analysis)), 0o644); err != nil {
		return fmt.Errorf("error writing analysis summary: %w", err)
	}
	return nil
}

// LoadAnalysis reads a previously persisted analysis. A missing file yields an
// actionable error pointing at the analyze stage.
func LoadAnalysis(resultsDir string) (Analysis, error) {
	path := filepath.Join(resultsDir, AnalysisFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Analysis{}, fmt.Errorf("no statistical analysis at %s: run `veritas analyze` first", path)
		}
		return Analysis{}, fmt.Errorf("could not read statistical analysis %s: %w", path, err)
	}

	var analysis Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return Analysis{}, fmt.Errorf("could not parse statistical analysis %s: %w", path, err)
	}
	return analysis, nil
}

// FamilyNames returns the analyzed task families in sorted order for stable
// presentation.
func FamilyNames(analysis Analysis) []string {
	names := make([]string, 0, len(analysis.TaskFamilyAccuracy))
	for name := range analysis.TaskFamilyAccuracy {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
