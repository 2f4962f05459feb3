// internal/providers/provider.go

// Package providers defines the interface for the answer systems exercised by a
// benchmark run. It gives the runner a single abstraction over a local model
// invocation, a retrieval-prefixed variant, and the remote coherence engine.
package providers

import (
	"context"
	"encoding/json"
	"time"
)

// System identifies one of the three benchmarked answer systems.
type System string

const (
	// SystemLLM is the vanilla language model baseline.
	SystemLLM System = "LLM"
	// SystemRAG is the retrieval-augmented baseline.
	SystemRAG System = "LLM+RAG"
	// SystemRCE is the coherence-validated system under test.
	SystemRCE System = "RCE-LLM"
)

// Systems lists the benchmarked systems in their fixed invocation order.
func Systems() []System {
	return []System{SystemLLM, SystemRAG, SystemRCE}
}

// Answer is a single response from an answer system.
type Answer struct {
	// Text is the raw response text. Empty when the call failed.
	Text string
	// Elapsed is the wall-clock duration of the call.
	Elapsed time.Duration
	// CoherenceScore is an optional validation figure reported by the engine.
	CoherenceScore *float64
	// CoherenceModules lists the engine modules that participated, when reported.
	CoherenceModules []string
	// HallucinationRate is an optional figure reported by the engine.
	HallucinationRate *float64
	// PipelineTrace is an opaque trace object reported by the engine.
	PipelineTrace json.RawMessage
}

// AnswerProvider produces one answer for a benchmark query.
// Implementations bound each call with their configured timeout and surface
// failures as errors; they never retry.
type AnswerProvider interface {
	// System reports which benchmarked system this provider represents.
	System() System
	// Answer sends the query to the underlying collaborator and returns its response.
	Answer(ctx context.Context, query, domain string) (Answer, error)
}

// EngineProvider is an AnswerProvider that also exposes a health probe, as the
// coherence engine does.
type EngineProvider interface {
	AnswerProvider
	// Health reports whether the engine is reachable and ready.
	Health(ctx context.Context) error
}
