// internal/stats/types.go
package stats

import (
	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
)

// Metadata describes one analysis pass.
type Metadata struct {
	AnalysisDate string `json:"analysis_date"`
	RunID        string `json:"run_id,omitempty"`
	Note         string `json:"note,omitempty"`
}

// EffectSize is a Cohen's h value with its qualitative bucket.
type EffectSize struct {
	CohensH        float64 `json:"cohens_h"`
	Interpretation string  `json:"interpretation"`
}

// Comparison keys for the effect-size map.
const (
	ComparisonRCEvsLLM = "RCE_vs_LLM"
	ComparisonRCEvsRAG = "RCE_vs_RAG"
)

// OverallHypothesis is a derived boolean comparing two overall accuracies.
// These are presentation conveniences, not statistical tests.
type OverallHypothesis struct {
	Supported             bool    `json:"supported"`
	ImprovementPercentage float64 `json:"improvement_percentage"`
}

// ConsistencyHypothesis reports whether the system under test strictly beats
// both baselines in every task family.
type ConsistencyHypothesis struct {
	Supported        bool `json:"supported"`
	FamiliesImproved int  `json:"families_improved"`
	TotalFamilies    int  `json:"total_families"`
}

// FactualHypothesis reports whether the system under test leads on the
// factual-grounding family.
type FactualHypothesis struct {
	Supported bool `json:"supported"`
}

// Hypotheses bundles the derived booleans.
type Hypotheses struct {
	H1RCEBetterThanLLM         OverallHypothesis     `json:"H1_RCE_better_than_LLM"`
	H2RCEBetterThanRAG         OverallHypothesis     `json:"H2_RCE_better_than_RAG"`
	H3ConsistentImprovement    ConsistencyHypothesis `json:"H3_consistent_improvement"`
	H4CoherenceImprovesFactual FactualHypothesis     `json:"H4_coherence_improves_factual"`
}

// Analysis is the statistical snapshot persisted for the report stage.
type Analysis struct {
	Metadata           Metadata                                           `json:"metadata"`
	OverallAccuracy    map[providers.System]benchmark.Accuracy            `json:"overall_accuracy"`
	TaskFamilyAccuracy map[string]map[providers.System]benchmark.Accuracy `json:"task_family_accuracy"`
	EffectSizes        map[string]EffectSize                              `json:"effect_sizes"`
	Hypotheses         Hypotheses                                         `json:"hypotheses_validation"`
}
