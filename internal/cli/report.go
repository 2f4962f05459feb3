// internal/cli/report.go
package cli

import (
	"github.com/spf13/cobra"
)

// reportCmd implements 'report', which renders the HTML results page.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the HTML validation report",
	Long: `Read the benchmark results and statistical analysis snapshots and render a
standalone HTML page summarizing accuracy, effect sizes, and hypotheses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
