package rce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/probeworks/veritas/internal/appconfig"
	"github.com/probeworks/veritas/internal/providers"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &appconfig.Config{
		Model:    appconfig.ModelConfig{Name: "llama3.2"},
		Engine:   appconfig.EngineConfig{URL: server.URL, TimeoutSeconds: 2},
		Families: []string{"f1_units"},
	}
	return New(cfg)
}

func TestAnswerDecodesEngineResponse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: %s", r.Method)
		}
		if r.URL.Path != "/api/v1/query" {
			t.Errorf("path: %s", r.URL.Path)
		}
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "What is the boiling point of water?" || req.Domain != "units" {
			t.Errorf("request payload: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer": "100 degrees Celsius",
			"coherence_score": 0.97,
			"coherence_modules": ["temporal", "factual"],
			"pipeline_trace": {"steps": 5}
		}`))
	})

	ans, err := p.Answer(context.Background(), "What is the boiling point of water?", "units")
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	if ans.Text != "100 degrees Celsius" {
		t.Fatalf("answer text: %q", ans.Text)
	}
	if ans.CoherenceScore == nil || *ans.CoherenceScore != 0.97 {
		t.Fatalf("coherence score: %v", ans.CoherenceScore)
	}
	if len(ans.CoherenceModules) != 2 {
		t.Fatalf("coherence modules: %v", ans.CoherenceModules)
	}
	if len(ans.PipelineTrace) == 0 {
		t.Fatal("expected pipeline trace passthrough")
	}
}

func TestAnswerNonOKStatus(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine overloaded", http.StatusServiceUnavailable)
	})

	_, err := p.Answer(context.Background(), "q", "general")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "HTTP 503") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "engine overloaded") {
		t.Fatalf("expected body in error, got: %v", err)
	}
}

func TestAnswerTimeout(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})
	p.timeout = 50 * time.Millisecond
	p.client.Timeout = 50 * time.Millisecond

	_, err := p.Answer(context.Background(), "q", "general")
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestAnswerMalformedJSON(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := p.Answer(context.Background(), "q", "general")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "malformed JSON") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealth(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	if err := p.Health(context.Background()); err != nil {
		t.Fatalf("Health error: %v", err)
	}
}

func TestHealthNonOK(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if err := p.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}

func TestSystem(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	if p.System() != providers.SystemRCE {
		t.Fatalf("system: %s", p.System())
	}
}
