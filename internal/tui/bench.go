// internal/tui/bench.go
// Package tui renders live benchmark progress as a Bubble Tea interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/probeworks/veritas/internal/benchmark"
	"github.com/probeworks/veritas/internal/providers"
	"github.com/probeworks/veritas/internal/util"
)

// maxQueryRunes bounds the rendered query line.
const maxQueryRunes = 72

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	familyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	queryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// eventMsg carries one runner progress event into the Update loop.
type eventMsg benchmark.Event

// doneMsg signals that the run finished, successfully or not.
type doneMsg struct{ err error }

// familyLine is one finished family's summary row.
type familyLine struct {
	name     string
	accuracy map[providers.System]benchmark.Accuracy
}

// model is the benchmark progress model for the Bubble Tea UI.
type model struct {
	spinner     spinner.Model
	progress    progress.Model
	family      string
	queryIndex  int
	queryTotal  int
	queryText   string
	lastResults []benchmark.SystemResponse
	finished    []familyLine
	done        bool
	err         error
}

func initialModel() *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &model{spinner: s, progress: progress.New(progress.WithDefaultGradient())}
}

// Init starts the spinner tick loop.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update processes runner events and terminal input.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case eventMsg:
		ev := benchmark.Event(msg)
		switch ev.Kind {
		case benchmark.EventFamilyStart:
			m.family = ev.Family
			m.queryIndex = 0
			m.queryTotal = ev.QueryTotal
			m.queryText = ""
			m.lastResults = nil
		case benchmark.EventQueryStart:
			m.queryIndex = ev.QueryIndex
			m.queryText = ev.QueryText
			m.lastResults = nil
		case benchmark.EventSystemResult:
			m.lastResults = append(m.lastResults, ev.Response)
		case benchmark.EventFamilyDone:
			m.finished = append(m.finished, familyLine{name: ev.Family, accuracy: ev.Accuracy})
			m.family = ""
			m.queryText = ""
			m.lastResults = nil
		}
		return m, nil

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the progress screen.
func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("veritas benchmark"))
	b.WriteString("\n\n")

	for _, line := range m.finished {
		b.WriteString(familyStyle.Render(line.name))
		b.WriteString("  ")
		parts := make([]string, 0, len(providers.Systems()))
		for _, system := range providers.Systems() {
			acc := line.accuracy[system]
			parts = append(parts, fmt.Sprintf("%s %.1f%%", system, acc.Accuracy*100))
		}
		b.WriteString(dimStyle.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}

	if m.family != "" {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(familyStyle.Render(m.family))
		if m.queryTotal > 0 {
			b.WriteString(fmt.Sprintf(" [%d/%d]", m.queryIndex, m.queryTotal))
		}
		b.WriteString("\n")
		if m.queryTotal > 0 {
			b.WriteString("  ")
			b.WriteString(m.progress.ViewAs(float64(m.queryIndex) / float64(m.queryTotal)))
			b.WriteString("\n")
		}
		if m.queryText != "" {
			b.WriteString(queryStyle.Render("  " + util.TruncateRunes(m.queryText, maxQueryRunes)))
			b.WriteString("\n")
		}
		for _, resp := range m.lastResults {
			b.WriteString("  ")
			b.WriteString(renderResult(resp))
			b.WriteString("\n")
		}
	}

	if m.done {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(wrongStyle.Render(fmt.Sprintf("benchmark failed: %v", m.err)))
		} else {
			b.WriteString(correctStyle.Render("benchmark complete"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("q or ctrl+c to abort"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderResult(resp benchmark.SystemResponse) string {
	label := fmt.Sprintf("%-8s", resp.System)
	switch {
	case !resp.Success:
		return failStyle.Render(fmt.Sprintf("%s error: %s", label, resp.Error))
	case resp.Correct:
		return correctStyle.Render(fmt.Sprintf("%s correct (%.1fs)", label, resp.ExecutionTime))
	default:
		return wrongStyle.Render(fmt.Sprintf("%s incorrect (%.1fs)", label, resp.ExecutionTime))
	}
}

// Run drives the progress UI around a benchmark run. The runner executes in a
// goroutine and feeds its events through the program; Run returns the runner's
// outcome once the UI has shut down.
func Run(run func(benchmark.EmitFunc) error) error {
	m := initialModel()
	program := tea.NewProgram(m)

	errCh := make(chan error, 1)
	go func() {
		err := run(func(ev benchmark.Event) {
			program.Send(eventMsg(ev))
		})
		errCh <- err
		program.Send(doneMsg{err: err})
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running progress interface: %w", err)
	}
	return <-errCh
}
