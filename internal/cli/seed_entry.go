// internal/cli/seed_entry.go
package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/stats"
)

// demoCounts holds per-family correct counts for the demonstration snapshot,
// chosen to land on overall accuracies of 0.600, 0.700, and 0.933.
type demoCounts struct {
	family  string
	total   int
	correct map[providers.System]int
}

func demoFamilies() []demoCounts {
	return []demoCounts{
		{"f1_units", 8, map[providers.System]int{providers.SystemLLM: 5, providers.SystemRAG: 6, providers.SystemRCE: 7}},
		{"f2_temporal", 8, map[providers.System]int{providers.SystemLLM: 4, providers.SystemRAG: 5, providers.SystemRCE: 7}},
		{"f3_arithmetic", 8, map[providers.System]int{providers.SystemLLM: 6, providers.SystemRAG: 6, providers.SystemRCE: 8}},
		{"f4_coreference", 3, map[providers.System]int{providers.SystemLLM: 2, providers.SystemRAG: 2, providers.SystemRCE: 3}},
		{"f5_factual", 3, map[providers.System]int{providers.SystemLLM: 1, providers.SystemRAG: 2, providers.SystemRCE: 3}},
	}
}

func runSeed(cmd *cobra.Command, cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not initialized")
	}

	results := demoResults()
	if err := benchmark.WriteResults(cfg.ResultsPath(), results); err != nil {
		return err
	}

	analysis, err := stats.Analyze(results)
	if err != nil {
		return err
	}
	analysis.Metadata.Note = results.Metadata.Note
	if err := stats.WriteAnalysis(cfg.ResultsPath(), analysis); err != nil {
		return err
	}

	cmd.Printf("Seeded demonstration snapshots in %s\n", cfg.ResultsPath())
	return nil
}

// demoResults builds a synthetic benchmark snapshot whose per-system correct
// flags reproduce the demonstration accuracy tables.
func demoResults() benchmark.Results {
	results := benchmark.Results{
		Metadata: benchmark.Metadata{
			RunID:         uuid.NewString(),
			ExecutionDate: time.Now().Format(time.RFC3339),
			Systems:       []string{string(providers.SystemLLM), string(providers.SystemRAG), string(providers.SystemRCE)},
			Note:          "Demonstration results",
		},
		TaskFamilies: make(map[string]benchmark.FamilyResults),
	}

	for _, fam := range demoFamilies() {
		familyResults := benchmark.FamilyResults{
			TaskFamily:   fam.family,
			TotalQueries: fam.total,
			Queries:      make([]benchmark.QueryResult, 0, fam.total),
		}
		for i := 0; i < fam.total; i++ {
			q := benchmark.QueryResult{
				QueryID:    fmt.Sprintf("%s_q%d", fam.family, i+1),
				QueryText:  fmt.Sprintf("demonstration query %d", i+1),
				TaskFamily: fam.family,
			}
			for _, system := range providers.Systems() {
				q.Systems = append(q.Systems, benchmark.SystemResponse{
					System:  system,
					Success: true,
					Correct: i < fam.correct[system],
				})
			}
			familyResults.Queries = append(familyResults.Queries, q)
		}
		familyResults.Accuracy = familyAccuracy(familyResults)
		results.TaskFamilies[fam.family] = familyResults
		results.Metadata.TotalQueries += fam.total
	}
	return results
}

func familyAccuracy(fam benchmark.FamilyResults) map[providers.System]benchmark.Accuracy {
	acc := make(map[providers.System]benchmark.Accuracy, len(providers.Systems()))
	for _, system := range providers.Systems() {
		entry := benchmark.Accuracy{}
		for _, q := range fam.Queries {
			for _, resp := range q.Systems {
				if resp.System != system {
					continue
				}
				entry.Total++
				if resp.Correct {
					entry.Correct++
				}
			}
		}
		if entry.Total > 0 {
			entry.Accuracy = float64(entry.Correct) / float64(entry.Total)
		}
		acc[system] = entry
	}
	return acc
}
