// internal/providers/rce/provider.go
// Package rce provides an AnswerProvider backed by the coherence validation
// engine's HTTP API. The engine is a black box beyond this contract: a JSON
// query in, an answer plus optional coherence metadata out.
package rce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/k0kubun/pp"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/logging"
	"github.com/probeworks/veritas/internal/providers"
)

// Provider issues one query request to the engine per benchmark query.
type Provider struct {
	client        *http.Client
	queryURL      string
	healthURL     string
	timeout       time.Duration
	healthTimeout time.Duration
	debug         bool
}

// New constructs a Provider configured with the engine endpoint and timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.EngineTimeout()
	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		queryURL:      cfg.QueryEndpoint(),
		healthURL:     cfg.HealthEndpoint(),
		timeout:       timeout,
		healthTimeout: cfg.HealthTimeout(),
		debug:         cfg.Debug,
	}
}

// queryRequest is the engine's query payload.
type queryRequest struct {
	Query  string `json:"query"`
	Domain string `json:"domain"`
}

// queryResponse is the engine's answer payload. The coherence fields are
// decorative metadata carried through untouched; scoring never reads them.
type queryResponse struct {
	Answer            string          `json:"answer"`
	CoherenceScore    *float64        `json:"coherence_score,omitempty"`
	CoherenceModules  []string        `json:"coherence_modules,omitempty"`
	HallucinationRate *float64        `json:"hallucination_rate,omitempty"`
	PipelineTrace     json.RawMessage `json:"pipeline_trace,omitempty"`
}

// System reports the benchmarked system this provider represents.
func (p *Provider) System() providers.System { return providers.SystemRCE }

// Answer posts the query to the engine and decodes its response.
func (p *Provider) Answer(ctx context.Context, query, domain string) (providers.Answer, error) {
	payload, err := json.Marshal(queryRequest{Query: query, Domain: domain})
	if err != nil {
		return providers.Answer{}, err
	}
	logging.LogRequest("VERITAS->RCE", string(p.System()), p.queryURL, payload)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.queryURL, bytes.NewReader(payload))
	if err != nil {
		return providers.Answer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return providers.Answer{Elapsed: elapsed}, fmt.Errorf("engine request timed out after %s: %w", p.timeout, context.DeadlineExceeded)
		}
		return providers.Answer{Elapsed: elapsed}, fmt.Errorf("engine request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return providers.Answer{Elapsed: elapsed}, err
	}
	logging.LogRequest("RCE->VERITAS", string(p.System()), p.queryURL, body)

	if resp.StatusCode != http.StatusOK {
		return providers.Answer{Elapsed: elapsed}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded queryResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return providers.Answer{Elapsed: elapsed}, fmt.Errorf("engine returned malformed JSON: %w", err)
	}
	if p.debug {
		pp.Println(decoded)
	}

	return providers.Answer{
		Text:              decoded.Answer,
		Elapsed:           elapsed,
		CoherenceScore:    decoded.CoherenceScore,
		CoherenceModules:  decoded.CoherenceModules,
		HallucinationRate: decoded.HallucinationRate,
		PipelineTrace:     decoded.PipelineTrace,
	}, nil
}

// Health probes the engine's health endpoint. A non-200 status is an error.
func (p *Provider) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.healthURL, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("engine health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine health check returned %s", resp.Status)
	}
	return nil
}
