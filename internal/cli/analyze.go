// internal/cli/analyze.go
package cli

import (
	"github.com/spf13/cobra"
)

// analyzeCmd implements 'analyze', which folds a benchmark snapshot into
// accuracy figures, effect sizes, and the hypothesis summary.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute accuracy and effect sizes from benchmark results",
	Long: `Read the benchmark results snapshot, recount accuracy per system and task
family, compute Cohen's h effect sizes, and write the statistical analysis
JSON plus a markdown summary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
