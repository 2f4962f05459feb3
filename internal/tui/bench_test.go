package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
)

// TestProgress_StateTransitions_And_View walks the model through a full family
// and verifies each stage renders.
func TestProgress_StateTransitions_And_View(t *testing.T) {
	m := initialModel()

	m2, _ := m.Update(eventMsg{Kind: benchmark.EventFamilyStart, Family: "f1_units", QueryTotal: 2})
	m = m2.(*model)
	if m.family != "f1_units" || m.queryTotal != 2 {
		t.Fatalf("family start not applied: %q total=%d", m.family, m.queryTotal)
	}

	m2, _ = m.Update(eventMsg{Kind: benchmark.EventQueryStart, Family: "f1_units", QueryIndex: 1, QueryTotal: 2, QueryText: "Boiling point of water?"})
	m = m2.(*model)
	out := m.View()
	if !strings.Contains(out, "f1_units") || !strings.Contains(out, "[1/2]") || !strings.Contains(out, "Boiling point of water?") {
		t.Fatalf("query progress missing from view: %s", out)
	}

	m2, _ = m.Update(eventMsg{Kind: benchmark.EventSystemResult, Response: benchmark.SystemResponse{
		System: providers.SystemLLM, Success: true, Correct: true, ExecutionTime: 1.2,
	}})
	m = m2.(*model)
	m2, _ = m.Update(eventMsg{Kind: benchmark.EventSystemResult, Response: benchmark.SystemResponse{
		System: providers.SystemRAG, Success: false, Error: "connection refused",
	}})
	m = m2.(*model)
	out = m.View()
	if !strings.Contains(out, "correct") || !strings.Contains(out, "connection refused") {
		t.Fatalf("system results missing from view: %s", out)
	}

	m2, _ = m.Update(eventMsg{Kind: benchmark.EventFamilyDone, Family: "f1_units", Accuracy: map[providers.System]benchmark.Accuracy{
		providers.SystemLLM: {Correct: 1, Total: 2, Accuracy: 0.5},
		providers.SystemRAG: {Correct: 2, Total: 2, Accuracy: 1},
		providers.SystemRCE: {Correct: 2, Total: 2, Accuracy: 1},
	}})
	m = m2.(*model)
	if m.family != "" || len(m.finished) != 1 {
		t.Fatalf("family done not applied: %q finished=%d", m.family, len(m.finished))
	}
	out = m.View()
	if !strings.Contains(out, "50.0%") || !strings.Contains(out, "100.0%") {
		t.Fatalf("family summary missing from view: %s", out)
	}
}

func TestProgress_DoneAndFailure(t *testing.T) {
	m := initialModel()

	m2, cmd := m.Update(doneMsg{})
	m = m2.(*model)
	if !m.done || cmd == nil {
		t.Fatal("done message should finish the model and quit")
	}
	if !strings.Contains(m.View(), "benchmark complete") {
		t.Fatalf("completion missing from view: %s", m.View())
	}

	m = initialModel()
	m2, _ = m.Update(doneMsg{err: errors.New("engine unreachable")})
	m = m2.(*model)
	if !strings.Contains(m.View(), "engine unreachable") {
		t.Fatalf("failure missing from view: %s", m.View())
	}
}

func TestProgress_CtrlCQuits(t *testing.T) {
	m := initialModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should produce a quit command")
	}
}
