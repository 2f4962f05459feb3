// internal/cli/bench_entry.go
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providerfactory"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/tui"
	"github.com/probeworks/veritas/internal/util"
)

var (
	correctResult = color.New(color.FgGreen).SprintFunc()
	wrongResult   = color.New(color.FgRed).SprintFunc()
	failedResult  = color.New(color.FgYellow).SprintFunc()
	familyHeader  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func runBench(cmd *cobra.Command, cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if DebugEnabled() {
		pp.Println(cfg)
	}

	set, err := providerfactory.New(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var results benchmark.Results

	if TUIEnabled() {
		err = tui.Run(func(emit benchmark.EmitFunc) error {
			var runErr error
			results, runErr = benchmark.Run(ctx, cfg, set, emit)
			return runErr
		})
	} else {
		results, err = benchmark.Run(ctx, cfg, set, printProgress(cmd))
	}
	if err != nil {
		return err
	}

	if err := benchmark.WriteResults(cfg.ResultsPath(), results); err != nil {
		return err
	}
	cmd.Printf("Benchmarked %d queries across %d task families\n",
		results.Metadata.TotalQueries, len(results.TaskFamilies))
	return nil
}

// printProgress renders runner events as plain colored lines for non-TUI runs.
func printProgress(cmd *cobra.Command) benchmark.EmitFunc {
	return func(ev benchmark.Event) {
		switch ev.Kind {
		case benchmark.EventFamilyStart:
			cmd.Printf("%s (%d queries)\n", familyHeader(ev.Family), ev.QueryTotal)
		case benchmark.EventQueryStart:
			cmd.Printf("  [%d/%d] %s\n", ev.QueryIndex, ev.QueryTotal, util.TruncateRunes(ev.QueryText, 96))
		case benchmark.EventSystemResult:
			resp := ev.Response
			switch {
			case !resp.Success:
				cmd.Printf("    %-8s %s\n", resp.System, failedResult("error: "+resp.Error))
			case resp.Correct:
				cmd.Printf("    %-8s %s (%.1fs)\n", resp.System, correctResult("correct"), resp.ExecutionTime)
			default:
				cmd.Printf("    %-8s %s (%.1fs)\n", resp.System, wrongResult("incorrect"), resp.ExecutionTime)
			}
		case benchmark.EventFamilyDone:
			for _, system := range providers.Systems() {
				acc := ev.Accuracy[system]
				cmd.Printf("  %-8s %d/%d (%.1f%%)\n", system, acc.Correct, acc.Total, acc.Accuracy*100)
			}
		}
	}
}
