// internal/cli/bench.go
package cli

import (
	"github.com/spf13/cobra"
)

// benchCmd implements 'bench', which runs the full query suite through the
// three answer systems and writes the scored results.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the benchmark suite against all three answer systems",
	Long: `Send every task family query to the vanilla model, the retrieval-augmented
baseline, and the coherence engine, one query at a time. Responses are scored
against the expected answers and written to the results directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(cmd, GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
}
