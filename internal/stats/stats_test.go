package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCohensHIdenticalProportions(t *testing.T) {
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		h, err := CohensH(p, p)
		if err != nil {
			t.Fatalf("CohensH(%v, %v) error: %v", p, p, err)
		}
		if h != 0 {
			t.Fatalf("CohensH(%v, %v) = %v, want 0", p, p, h)
		}
	}
}

func TestCohensHAntisymmetric(t *testing.T) {
	ab, err := CohensH(0.9, 0.6)
	if err != nil {
		t.Fatalf("CohensH error: %v", err)
	}
	ba, err := CohensH(0.6, 0.9)
	if err != nil {
		t.Fatalf("CohensH error: %v", err)
	}
	if !almostEqual(ab, -ba) {
		t.Fatalf("CohensH not antisymmetric: %v vs %v", ab, ba)
	}
}

func TestCohensHRejectsOutOfRange(t *testing.T) {
	for _, pair := range [][2]float64{{-0.1, 0.5}, {0.5, 1.1}, {2, 0}} {
		if _, err := CohensH(pair[0], pair[1]); err == nil {
			t.Fatalf("CohensH(%v, %v) should reject out-of-range input", pair[0], pair[1])
		}
	}
}

func TestInterpretHBuckets(t *testing.T) {
	cases := []struct {
		h    float64
		want string
	}{
		{0, "negligible"},
		{0.19, "negligible"},
		{0.2, "small"},
		{0.49, "small"},
		{0.5, "medium"},
		{0.79, "medium"},
		{0.8, "large"},
		{2.1, "large"},
		{-0.85, "large"},
		{-0.3, "small"},
	}
	for _, tc := range cases {
		if got := InterpretH(tc.h); got != tc.want {
			t.Fatalf("InterpretH(%v) = %q, want %q", tc.h, got, tc.want)
		}
	}
}

// fixtureResults builds a snapshot from per-family correct counts, one query
// record per response so Analyze recounts from the raw data.
func fixtureResults(t *testing.T, families map[string]map[providers.System][2]int) benchmark.Results {
	t.Helper()
	results := benchmark.Results{
		Metadata:     benchmark.Metadata{RunID: "fixture"},
		TaskFamilies: make(map[string]benchmark.FamilyResults),
	}
	for family, counts := range families {
		var queries []benchmark.QueryResult
		total := 0
		for _, count := range counts {
			if count[1] > total {
				total = count[1]
			}
		}
		for i := 0; i < total; i++ {
			q := benchmark.QueryResult{QueryID: family, TaskFamily: family}
			for _, system := range providers.Systems() {
				count := counts[system]
				q.Systems = append(q.Systems, benchmark.SystemResponse{
					System:  system,
					Success: true,
					Correct: i < count[0],
				})
			}
			queries = append(queries, q)
		}
		results.TaskFamilies[family] = benchmark.FamilyResults{
			TaskFamily:   family,
			TotalQueries: total,
			Queries:      queries,
		}
		results.Metadata.TotalQueries += total
	}
	return results
}

// publishedCounts mirrors the benchmark suite's reference run: 30 queries,
// overall accuracies 0.600 / 0.700 / 0.933.
func publishedCounts() map[string]map[providers.System][2]int {
	return map[string]map[providers.System][2]int{
		"f1_units":       {providers.SystemLLM: {5, 8}, providers.SystemRAG: {6, 8}, providers.SystemRCE: {7, 8}},
		"f2_temporal":    {providers.SystemLLM: {4, 8}, providers.SystemRAG: {5, 8}, providers.SystemRCE: {7, 8}},
		"f3_arithmetic":  {providers.SystemLLM: {6, 8}, providers.SystemRAG: {6, 8}, providers.SystemRCE: {8, 8}},
		"f4_coreference": {providers.SystemLLM: {2, 3}, providers.SystemRAG: {2, 3}, providers.SystemRCE: {3, 3}},
		"f5_factual":     {providers.SystemLLM: {1, 3}, providers.SystemRAG: {2, 3}, providers.SystemRCE: {3, 3}},
	}
}

func TestAnalyzeReferenceRun(t *testing.T) {
	analysis, err := Analyze(fixtureResults(t, publishedCounts()))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	llm := analysis.OverallAccuracy[providers.SystemLLM]
	if llm.Correct != 18 || llm.Total != 30 || !almostEqual(llm.Accuracy, 0.6) {
		t.Fatalf("llm overall: %+v", llm)
	}
	rce := analysis.OverallAccuracy[providers.SystemRCE]
	if rce.Correct != 28 || rce.Total != 30 {
		t.Fatalf("rce overall: %+v", rce)
	}

	vsLLM := analysis.EffectSizes[ComparisonRCEvsLLM]
	if math.Abs(vsLLM.CohensH-0.8471) > 0.001 {
		t.Fatalf("h vs llm: %v", vsLLM.CohensH)
	}
	if vsLLM.Interpretation != "large" {
		t.Fatalf("vs llm interpretation: %s", vsLLM.Interpretation)
	}
	vsRAG := analysis.EffectSizes[ComparisonRCEvsRAG]
	if math.Abs(vsRAG.CohensH-0.6370) > 0.001 {
		t.Fatalf("h vs rag: %v", vsRAG.CohensH)
	}
	if vsRAG.Interpretation != "medium" {
		t.Fatalf("vs rag interpretation: %s", vsRAG.Interpretation)
	}

	hyp := analysis.Hypotheses
	if !hyp.H1RCEBetterThanLLM.Supported || !hyp.H2RCEBetterThanRAG.Supported {
		t.Fatalf("overall hypotheses: %+v", hyp)
	}
	if math.Abs(hyp.H1RCEBetterThanLLM.ImprovementPercentage-55.555555) > 0.01 {
		t.Fatalf("h1 improvement: %v", hyp.H1RCEBetterThanLLM.ImprovementPercentage)
	}
	if !hyp.H3ConsistentImprovement.Supported || hyp.H3ConsistentImprovement.FamiliesImproved != 5 {
		t.Fatalf("h3: %+v", hyp.H3ConsistentImprovement)
	}
	if !hyp.H4CoherenceImprovesFactual.Supported {
		t.Fatal("h4 should be supported on the reference run")
	}
	if analysis.Metadata.RunID != "fixture" {
		t.Fatalf("run id not carried over: %q", analysis.Metadata.RunID)
	}
}

func TestAnalyzeConsistencyBreaksOnOneFamily(t *testing.T) {
	counts := publishedCounts()
	// Tie in one family: strict improvement no longer holds everywhere.
	counts["f3_arithmetic"][providers.SystemRCE] = [2]int{6, 8}

	analysis, err := Analyze(fixtureResults(t, counts))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	h3 := analysis.Hypotheses.H3ConsistentImprovement
	if h3.Supported {
		t.Fatal("a non-improving family must break consistency")
	}
	if h3.FamiliesImproved != 4 || h3.TotalFamilies != 5 {
		t.Fatalf("h3 counts: %+v", h3)
	}
}

func TestAnalyzeFactualHypothesisNeedsFamily(t *testing.T) {
	counts := publishedCounts()
	delete(counts, "f5_factual")

	analysis, err := Analyze(fixtureResults(t, counts))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if analysis.Hypotheses.H4CoherenceImprovesFactual.Supported {
		t.Fatal("h4 must not be supported without the factual family")
	}
}

func TestAnalyzeEmptyResults(t *testing.T) {
	if _, err := Analyze(benchmark.Results{}); err == nil {
		t.Fatal("expected error for empty results")
	}
}

func TestAnalyzeZeroTotalAccuracy(t *testing.T) {
	results := benchmark.Results{
		TaskFamilies: map[string]benchmark.FamilyResults{
			"f1_units": {TaskFamily: "f1_units"},
		},
	}
	analysis, err := Analyze(results)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	for _, system := range providers.Systems() {
		if acc := analysis.OverallAccuracy[system]; acc.Accuracy != 0 || acc.Total != 0 {
			t.Fatalf("%s accuracy with no responses: %+v", system, acc)
		}
	}
}

func TestWriteAndLoadAnalysis(t *testing.T) {
	dir := t.TempDir()
	analysis, err := Analyze(fixtureResults(t, publishedCounts()))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if err := WriteAnalysis(dir, analysis); err != nil {
		t.Fatalf("WriteAnalysis error: %v", err)
	}

	loaded, err := LoadAnalysis(dir)
	if err != nil {
		t.Fatalf("LoadAnalysis error: %v", err)
	}
	if loaded.Metadata.RunID != "fixture" {
		t.Fatalf("round-trip run id: %q", loaded.Metadata.RunID)
	}
	if !almostEqual(loaded.OverallAccuracy[providers.SystemRCE].Accuracy, analysis.OverallAccuracy[providers.SystemRCE].Accuracy) {
		t.Fatal("round-trip accuracy lost")
	}
}

func TestLoadAnalysisMissingIsActionable(t *testing.T) {
	_, err := LoadAnalysis(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing analysis")
	}
	if !strings.Contains(err.Error(), "veritas analyze") {
		t.Fatalf("error should tell the user to run the analyze stage, got: %s", err)
	}
}

func TestSummaryContainsHeadlineFigures(t *testing.T) {
	analysis, err := Analyze(fixtureResults(t, publishedCounts()))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	summary := Summary(analysis)
	for _, want := range []string{"93.3%", "RCE_vs_LLM", "large", "5/5 families improved", "f2_temporal"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}
