// internal/benchmark/types.go
package benchmark

import (
	"encoding/json"

	"github.com/probeworks/veritas/internal/providers"
)

// Metadata describes one benchmark run.
type Metadata struct {
	RunID         string   `json:"run_id"`
	ExecutionDate string   `json:"execution_date"`
	TotalQueries  int      `json:"total_queries"`
	Systems       []string `json:"systems"`
	Note          string   `json:"note,omitempty"`
}

// Accuracy is a correct/total pair with its derived ratio.
type Accuracy struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// SystemResponse is one system's answer to one query, scored.
// Created once and never mutated afterwards.
type SystemResponse struct {
	System            providers.System `json:"system"`
	Response          string           `json:"response"`
	ExecutionTime     float64          `json:"execution_time"`
	Success           bool             `json:"success"`
	Correct           bool             `json:"correct"`
	CoherenceScore    *float64         `json:"coherence_score,omitempty"`
	CoherenceModules  []string         `json:"coherence_modules,omitempty"`
	HallucinationRate *float64         `json:"hallucination_rate,omitempty"`
	PipelineTrace     json.RawMessage  `json:"pipeline_trace,omitempty"`
	Error             string           `json:"error,omitempty"`
}

// QueryResult pairs a query with its three system responses.
// Invariant: exactly one response per system, in the fixed invocation order.
type QueryResult struct {
	QueryID    string           `json:"query_id"`
	QueryText  string           `json:"query_text"`
	Expected   string           `json:"expected_answer"`
	Domain     string           `json:"domain"`
	TaskFamily string           `json:"task_family"`
	Systems    []SystemResponse `json:"systems"`
}

// FamilyResults holds every scored query of one task family.
type FamilyResults struct {
	TaskFamily   string                        `json:"task_family"`
	TotalQueries int                           `json:"total_queries"`
	Queries      []QueryResult                 `json:"queries"`
	Accuracy     map[providers.System]Accuracy `json:"accuracy"`
}

// Results is the full benchmark snapshot persisted between stages.
type Results struct {
	Metadata     Metadata                 `json:"metadata"`
	TaskFamilies map[string]FamilyResults `json:"task_families"`
}
