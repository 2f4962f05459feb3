// internal/providers/rag/provider.go
// Package rag decorates a baseline model provider with a retrieval-style prompt
// prefix. The underlying call contract is unchanged: the retrieval baseline is
// the same model asked to reason over web search results.
package rag

import (
	"context"

	"github.com/probeworks/veritas/internal/providers"
)

// Base is the subset of AnswerProvider the decorator delegates to.
type Base interface {
	Answer(ctx context.Context, query, domain string) (providers.Answer, error)
}

// Provider prefixes each query before delegating to the base provider.
type Provider struct {
	base   Base
	prefix string
}

// New wraps a baseline provider with the given retrieval prompt prefix.
func New(base Base, prefix string) *Provider {
	return &Provider{base: base, prefix: prefix}
}

// System reports the benchmarked system this provider represents.
func (p *Provider) System() providers.System { return providers.SystemRAG }

// Answer delegates to the base provider with the retrieval prefix applied.
func (p *Provider) Answer(ctx context.Context, query, domain string) (providers.Answer, error) {
	return p.base.Answer(ctx, p.prefix+query, domain)
}
