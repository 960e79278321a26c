package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/odooctl/internal/odoo"
)

// removeProgressModel runs the teardown and exits when it is done.
type removeProgressModel struct {
	state   *wizardState
	mgr     *odoo.Manager
	steps   []progressStep
	spinner spinner.Model
	errMsg  string
	done    bool
}

func newRemoveProgressModel(state *wizardState) *removeProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &removeProgressModel{
		state:   state,
		spinner: sp,
		steps: []progressStep{
			{label: "Connecting to PostgreSQL"},
			{label: "Removing instance"},
		},
	}
}

func (m *removeProgressModel) Init() tea.Cmd {
	m.errMsg = ""
	m.done = false
	for i := range m.steps {
		m.steps[i].status = stepPending
	}
	m.steps[0].status = stepRunning
	return tea.Batch(m.spinner.Tick, m.runStep(0))
}

func (m *removeProgressModel) runStep(index int) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch index {
		case 0:
			m.mgr, err = newManager(m.state)
		case 1:
			err = m.mgr.Remove(context.Background(), m.state.selected)
		}
		return stepDoneMsg{index: index, err: err}
	}
}

func (m *removeProgressModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepDoneMsg:
		if msg.err != nil {
			m.steps[msg.index].status = stepFailed
			m.errMsg = msg.err.Error()
			m.done = true
			return m, nil
		}
		m.steps[msg.index].status = stepDone

		next := msg.index + 1
		if next >= len(m.steps) {
			m.done = true
			m.state.finished = true
			return m, tea.Quit
		}
		m.steps[next].status = stepRunning
		return m, m.runStep(next)

	case tea.KeyMsg:
		if m.done && m.errMsg != "" {
			if isEnter(msg) || isEsc(msg) {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *removeProgressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Removing Instance"))
	b.WriteString("\n\n")

	for _, step := range m.steps {
		var icon string
		switch step.status {
		case stepPending:
			icon = mutedStyle.Render("  ")
		case stepRunning:
			icon = m.spinner.View()
		case stepDone:
			icon = successStyle.Render("OK")
		case stepFailed:
			icon = errorStyle.Render("XX")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", icon, normalStyle.Render(step.label)))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  Error: " + m.errMsg))
		b.WriteString(helpStyle.Render("\n  press enter or esc to exit"))
	}

	return b.String()
}
