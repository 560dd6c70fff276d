package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/backend"
	"github.com/joss/intentwave/internal/domain"
	"github.com/joss/intentwave/internal/executor"
)

var (
	dashTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dashWaveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	dashPassStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dashFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dashWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type intentState struct {
	status  string
	model   string
	attempt int
}

type eventMsg executor.Event
type doneMsg struct {
	result *domain.ExecutionResult
	err    error
}

type dashboardModel struct {
	spin     spinner.Model
	events   chan executor.Event
	wave     int
	intents  map[string]*intentState
	finished bool
	result   *domain.ExecutionResult
	err      error
}

func newDashboardModel(events chan executor.Event) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return dashboardModel{spin: s, events: events, intents: make(map[string]*intentState)}
}

func waitForEvent(events chan executor.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForEvent(m.events))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(executor.Event(msg))
		return m, waitForEvent(m.events)
	case doneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *dashboardModel) apply(ev executor.Event) {
	switch ev.Type {
	case executor.EventWaveStarted:
		m.wave = ev.Wave
	case executor.EventIntentStarted:
		m.intents[ev.IntentID] = &intentState{status: "running", model: ev.Model, attempt: 1}
	case executor.EventIntentCompleted:
		st := m.intents[ev.IntentID]
		if st == nil {
			st = &intentState{}
			m.intents[ev.IntentID] = st
		}
		st.status = ev.Status
		st.attempt = ev.Attempt
	case executor.EventIntentRetried:
		if st := m.intents[ev.IntentID]; st != nil {
			st.status = "retrying"
			st.model = ev.Model
			st.attempt = ev.Attempt
		}
	case executor.EventIntentEscalated:
		if st := m.intents[ev.IntentID]; st != nil {
			st.status = "escalated"
			st.model = ev.ToModel
			st.attempt = ev.Attempt
		}
	case executor.EventIntentHumanReview:
		if st := m.intents[ev.IntentID]; st != nil {
			st.status = "human-review"
		}
	}
}

func (m dashboardModel) View() string {
	out := dashTitleStyle.Render("intentwave") + "  " + dashWaveStyle.Render(fmt.Sprintf("wave %d", m.wave)) + "\n\n"

	ids := make([]string, 0, len(m.intents))
	for id := range m.intents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		st := m.intents[id]
		line := fmt.Sprintf("%-18s %-14s %-18s attempt %d", id, st.status, st.model, st.attempt)
		switch st.status {
		case "completed":
			out += dashPassStyle.Render(line) + "\n"
		case "human-review", "failed":
			out += dashFailStyle.Render(line) + "\n"
		case "retrying", "escalated":
			out += dashWarnStyle.Render(line) + "\n"
		default:
			out += m.spin.View() + " " + line + "\n"
		}
	}

	if m.finished && m.result != nil {
		out += "\n" + dashTitleStyle.Render("done") + fmt.Sprintf(
			"  passed=%d failed=%d human_review=%d verdict=%s\n",
			m.result.Passed, m.result.Failed, m.result.HumanReview, m.result.FinalVerdict.VerdictLabel,
		)
	}
	out += "\n(press q to quit)\n"
	return out
}

func runWithDashboard(intents []domain.Intent, p domain.Plan, registry *agents.Registry, back backend.Backend, cfg executor.Config) error {
	events := make(chan executor.Event, 64)
	ex := executor.New(cfg, registry, back, executor.ChannelEmitter(events))

	model := newDashboardModel(events)
	program := tea.NewProgram(model)

	resultCh := make(chan doneMsg, 1)
	go func() {
		result, err := ex.Run(context.Background(), intents, p)
		close(events)
		resultCh <- doneMsg{result: result, err: err}
	}()

	go func() {
		msg := <-resultCh
		program.Send(msg)
	}()

	_, err := program.Run()
	return err
}
