// internal/providers/openaicompat/provider.go
// Package openaicompat provides an AnswerProvider backed by an OpenAI-compatible
// chat completions endpoint, for setups where the baseline model is served over
// HTTP instead of a local runner.
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/logging"
	"github.com/probeworks/veritas/internal/providers"
)

// Provider issues one chat completion per query.
type Provider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// New constructs a Provider from the application configuration.
func New(cfg *appconfig.Config) *Provider {
	clientConfig := openai.DefaultConfig(cfg.Model.APIKey)
	if cfg.Model.URL != "" {
		clientConfig.BaseURL = cfg.Model.URL
	}
	return &Provider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model.Name,
		timeout: cfg.ModelTimeout(),
	}
}

// System reports the benchmarked system this provider represents.
func (p *Provider) System() providers.System { return providers.SystemLLM }

// Answer sends the query as a single-turn chat completion. The domain tag is
// not part of the endpoint's contract and is ignored.
func (p *Provider) Answer(ctx context.Context, query, _ string) (providers.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logging.LogRequest("VERITAS->LLM", string(p.System()), p.model, query)

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: query,
			},
		},
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return providers.Answer{Elapsed: elapsed}, fmt.Errorf("model request timed out after %s: %w", p.timeout, context.DeadlineExceeded)
		}
		return providers.Answer{Elapsed: elapsed}, fmt.Errorf("model request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return providers.Answer{Elapsed: elapsed}, errors.New("model returned no completion choices")
	}

	text := resp.Choices[0].Message.Content
	logging.LogRequest("LLM->VERITAS", string(p.System()), p.model, text)
	return providers.Answer{Text: text, Elapsed: elapsed}, nil
}
