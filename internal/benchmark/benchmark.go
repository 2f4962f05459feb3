// internal/benchmark/benchmark.go
// Package benchmark runs the query suite through the three answer systems and
// persists the scored results. Queries are processed one at a time and the
// systems are invoked in a fixed sequence per query; downstream output depends
// on that order.
package benchmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/dataset"
	"github.com/probeworks/veritas/internal/logging"
	"github.com/probeworks/veritas/internal/providerfactory"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/util"
)

// ResultsFileName is the snapshot consumed by the analyze stage.
const ResultsFileName = "benchmark_results.json"

// EventKind discriminates progress events emitted during a run.
type EventKind int

const (
	// EventFamilyStart fires before the first query of a task family.
	EventFamilyStart EventKind = iota
	// EventQueryStart fires before a query is sent to the first system.
	EventQueryStart
	// EventSystemResult fires after each system answers (or fails).
	EventSystemResult
	// EventFamilyDone fires after the last query of a task family.
	EventFamilyDone
)

// Event is one progress notification from the runner.
type Event struct {
	Kind       EventKind
	Family     string
	QueryIndex int
	QueryTotal int
	QueryID    string
	QueryText  string
	Response   SystemResponse
	Accuracy   map[providers.System]Accuracy
}

// EmitFunc receives progress events. A nil EmitFunc disables progress output.
type EmitFunc func(Event)

// Run executes the full benchmark suite and returns the scored results.
// Failures of individual systems degrade the affected response; a missing
// family fixture skips that family. Neither aborts the batch.
func Run(ctx context.Context, cfg *appconfig.Config, set providerfactory.Set, emit EmitFunc) (Results, error) {
	if emit == nil {
		emit = func(Event) {}
	}

	if err := set.RCE.Health(ctx); err != nil {
		logging.LogEvent("warning: engine health probe failed: %v (continuing; RCE-LLM results may fail)", err)
	}

	results := Results{
		Metadata: Metadata{
			RunID:         uuid.NewString(),
			ExecutionDate: time.Now().Format(time.RFC3339),
			Systems:       systemNames(),
		},
		TaskFamilies: make(map[string]FamilyResults),
	}

	ordered := set.Ordered()
	for _, family := range cfg.Families {
		fam, err := dataset.LoadFamily(cfg.DatasetsPath(), family)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logging.LogEvent("warning: no query fixtures for %s, skipping", family)
			} else {
				logging.LogEvent("warning: skipping %s: %v", family, err)
			}
			continue
		}

		logging.LogEvent("benchmarking %s (%d queries)", family, len(fam.Queries))
		emit(Event{Kind: EventFamilyStart, Family: family, QueryTotal: len(fam.Queries)})

		familyResults := FamilyResults{
			TaskFamily:   family,
			TotalQueries: len(fam.Queries),
			Queries:      make([]QueryResult, 0, len(fam.Queries)),
		}

		for i, item := range fam.Queries {
			emit(Event{
				Kind:       EventQueryStart,
				Family:     family,
				QueryIndex: i + 1,
				QueryTotal: len(fam.Queries),
				QueryID:    item.ID,
				QueryText:  item.Query,
			})

			result := QueryResult{
				QueryID:    item.ID,
				QueryText:  item.Query,
				Expected:   string(item.Expected),
				Domain:     item.Domain,
				TaskFamily: family,
				Systems:    make([]SystemResponse, 0, len(ordered)),
			}

			for _, provider := range ordered {
				resp := runSystem(ctx, provider, item)
				result.Systems = append(result.Systems, resp)
				emit(Event{
					Kind:       EventSystemResult,
					Family:     family,
					QueryIndex: i + 1,
					QueryTotal: len(fam.Queries),
					QueryID:    item.ID,
					Response:   resp,
				})
			}

			familyResults.Queries = append(familyResults.Queries, result)
		}

		familyResults.Accuracy = familyAccuracy(familyResults.Queries)
		emit(Event{Kind: EventFamilyDone, Family: family, Accuracy: familyResults.Accuracy})

		results.TaskFamilies[family] = familyResults
		results.Metadata.TotalQueries += familyResults.TotalQueries
	}

	return results, nil
}

// runSystem invokes one provider for one query and scores the response.
// Any failure is captured on the response record, never propagated.
func runSystem(ctx context.Context, provider providers.AnswerProvider, item dataset.QueryItem) SystemResponse {
	answer, err := provider.Answer(ctx, item.Query, item.Domain)

	resp := SystemResponse{
		System:            provider.System(),
		Response:          answer.Text,
		ExecutionTime:     answer.Elapsed.Seconds(),
		Success:           err == nil,
		CoherenceScore:    answer.CoherenceScore,
		CoherenceModules:  answer.CoherenceModules,
		HallucinationRate: answer.HallucinationRate,
		PipelineTrace:     answer.PipelineTrace,
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.Correct = Correct(answer.Text, item.Expected, item.Tolerance)
	return resp
}

// familyAccuracy counts correct responses per system across a family's queries.
// Failed responses count toward the total.
func familyAccuracy(queries []QueryResult) map[providers.System]Accuracy {
	acc := make(map[providers.System]Accuracy, len(providers.Systems()))
	for _, system := range providers.Systems() {
		acc[system] = Accuracy{}
	}

	for _, q := range queries {
		for _, resp := range q.Systems {
			entry := acc[resp.System]
			entry.Total++
			if resp.Correct {
				entry.Correct++
			}
			acc[resp.System] = entry
		}
	}

	for system, entry := range acc {
		if entry.Total > 0 {
			entry.Accuracy = float64(entry.Correct) / float64(entry.Total)
		}
		acc[system] = entry
	}
	return acc
}

// WriteResults persists the snapshot, overwriting any previous run wholesale,
// plus one file per task family.
func WriteResults(resultsDir string, results Results) error {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("error creating results directory: %w", err)
	}

	if err := writeJSON(filepath.Join(resultsDir, ResultsFileName), results); err != nil {
		return err
	}
	logging.LogEvent("benchmark results written to %s", filepath.Join(resultsDir, ResultsFileName))

	for family, familyResults := range results.TaskFamilies {
		path := filepath.Join(resultsDir, fmt.Sprintf("%s_results.json", util.Slugify(family)))
		if err := writeJSON(path, familyResults); err != nil {
			return err
		}
	}
	return nil
}

// LoadResults reads a previously persisted snapshot. A missing file yields an
// actionable error pointing at the bench stage.
func LoadResults(resultsDir string) (Results, error) {
	path := filepath.Join(resultsDir, ResultsFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Results{}, fmt.Errorf("no benchmark results at %s: run `veritas bench` first", path)
		}
		return Results{}, fmt.Errorf("could not read benchmark results %s: %w", path, err)
	}

	var results Results
	if err := json.Unmarshal(raw, &results); err != nil {
		return Results{}, fmt.Errorf("could not parse benchmark results %s: %w", path, err)
	}
	return results, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error writing results to file: %w", err)
	}
	return nil
}

func systemNames() []string {
	systems := providers.Systems()
	names := make([]string, len(systems))
	for i, s := range systems {
		names[i] = string(s)
	}
	return names
}
