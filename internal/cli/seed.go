// internal/cli/seed.go
package cli

import (
	"github.com/spf13/cobra"
)

// seedCmd implements 'seed', which writes demonstration snapshots so the
// analyze and report stages can be exercised without live answer systems.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write demonstration result snapshots",
	Long: `Generate a demonstration benchmark snapshot with realistic per-family
accuracy, run it through the statistical analysis, and write both files to the
results directory. Useful for previewing the report pipeline without a model
runner or coherence engine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd, GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
