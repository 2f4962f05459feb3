// internal/stats/markdown.go
package stats

import (
	"fmt"
	"strings"

	"github.com/probeworks/veritas/internal/providers"
)

// Summary renders the analysis as a short markdown document, written next to
// the JSON snapshot so a run can be skimmed without the HTML report.
func Summary(analysis Analysis) string {
	var b strings.Builder

	b.WriteString("# Benchmark Statistical Analysis\n\n")
	fmt.Fprintf(&b, "Analyzed: %s\n\n", analysis.Metadata.AnalysisDate)
	if analysis.Metadata.RunID != "" {
		fmt.Fprintf(&b, "Run: `%s`\n\n", analysis.Metadata.RunID)
	}

	b.WriteString("## Overall Accuracy\n\n")
	b.WriteString("| System | Correct | Total | Accuracy |\n")
	b.WriteString("|--------|---------|-------|----------|\n")
	for _, system := range providers.Systems() {
		acc := analysis.OverallAccuracy[system]
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% |\n", system, acc.Correct, acc.Total, acc.Accuracy*100)
	}

	b.WriteString("\n## Effect Sizes (Cohen's h)\n\n")
	b.WriteString("| Comparison | h | Interpretation |\n")
	b.WriteString("|------------|---|----------------|\n")
	for _, key := range []string{ComparisonRCEvsLLM, ComparisonRCEvsRAG} {
		es := analysis.EffectSizes[key]
		fmt.Fprintf(&b, "| %s | %.3f | %s |\n", key, es.CohensH, es.Interpretation)
	}

	b.WriteString("\n## Accuracy by Task Family\n\n")
	b.WriteString("| Family | LLM | LLM+RAG | RCE-LLM |\n")
	b.WriteString("|--------|-----|---------|--------|\n")
	for _, family := range FamilyNames(analysis) {
		acc := analysis.TaskFamilyAccuracy[family]
		fmt.Fprintf(&b, "| %s | %.1f%% | %.1f%% | %.1f%% |\n",
			family,
			acc[providers.SystemLLM].Accuracy*100,
			acc[providers.SystemRAG].Accuracy*100,
			acc[providers.SystemRCE].Accuracy*100)
	}

	hyp := analysis.Hypotheses
	b.WriteString("\n## Hypotheses\n\n")
	fmt.Fprintf(&b, "- H1 (RCE-LLM beats LLM): %s, improvement %.1f%%\n",
		verdict(hyp.H1RCEBetterThanLLM.Supported), hyp.H1RCEBetterThanLLM.ImprovementPercentage)
	fmt.Fprintf(&b, "- H2 (RCE-LLM beats LLM+RAG): %s, improvement %.1f%%\n",
		verdict(hyp.H2RCEBetterThanRAG.Supported), hyp.H2RCEBetterThanRAG.ImprovementPercentage)
	fmt.Fprintf(&b, "- H3 (consistent across families): %s, %d/%d families improved\n",
		verdict(hyp.H3ConsistentImprovement.Supported),
		hyp.H3ConsistentImprovement.FamiliesImproved,
		hyp.H3ConsistentImprovement.TotalFamilies)
	fmt.Fprintf(&b, "- H4 (coherence helps factual grounding): %s\n",
		verdict(hyp.H4CoherenceImprovesFactual.Supported))

	return b.String()
}

func verdict(supported bool) string {
	if supported {
		return "supported"
	}
	return "not supported"
}
