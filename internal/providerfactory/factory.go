// internal/providerfactory/factory.go
// Package providerfactory assembles the three answer providers from the
// application configuration.
package providerfactory

import (
	"fmt"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/providers/ollamacli"
	"github.com/probeworks/veritas/internal/providers/openaicompat"
	"github.com/probeworks/veritas/internal/providers/rag"
	"github.com/probeworks/veritas/internal/providers/rce"
)

// Set bundles the benchmarked providers in their fixed invocation order.
type Set struct {
	LLM providers.AnswerProvider
	RAG providers.AnswerProvider
	RCE providers.EngineProvider
}

// New builds the provider set for a benchmark run.
func New(cfg *appconfig.Config) (Set, error) {
	var base providers.AnswerProvider
	switch cfg.ModelType() {
	case appconfig.ModelTypeCLI:
		base = ollamacli.New(cfg)
	case appconfig.ModelTypeOpenAI:
		base = openaicompat.New(cfg)
	default:
		return Set{}, fmt.Errorf("unknown model type %q", cfg.Model.Type)
	}

	return Set{
		LLM: base,
		RAG: rag.New(base, cfg.RetrievalPrefix()),
		RCE: rce.New(cfg),
	}, nil
}

// Ordered returns the providers in the sequence the runner invokes them:
// vanilla model, retrieval baseline, then the system under test.
func (s Set) Ordered() []providers.AnswerProvider {
	return []providers.AnswerProvider{s.LLM, s.RAG, s.RCE}
}
