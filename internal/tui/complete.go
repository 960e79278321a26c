package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// completeModel shows the provisioning result, including the two generated
// secrets. This is the only place they are displayed.
type completeModel struct {
	state  *wizardState
	cursor int
}

func newCompleteModel(state *wizardState) *completeModel {
	return &completeModel{state: state}
}

func (m *completeModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *completeModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isLeft(key):
		if m.cursor > 0 {
			m.cursor--
		}
	case isRight(key):
		if m.cursor < 1 {
			m.cursor++
		}
	case isEnter(key):
		if m.cursor == 0 {
			return m, func() tea.Msg { return resetMsg{} }
		}
		return m, tea.Quit
	case isEsc(key):
		return m, tea.Quit
	}
	return m, nil
}

func (m *completeModel) View() string {
	res := m.state.result
	var b strings.Builder

	b.WriteString(successStyle.Render("Instance Created"))
	b.WriteString("\n\n")

	scheme := "http"
	if res.SSL {
		scheme = "https"
	}
	rows := []struct{ k, v string }{
		{"Name", res.Name},
		{"URL", fmt.Sprintf("%s://%s", scheme, res.Domain)},
		{"HTTP port", fmt.Sprintf("%d", res.HTTPPort)},
		{"Gevent port", fmt.Sprintf("%d", res.GeventPort)},
		{"Config", res.Paths.ConfigFile},
		{"Superadmin password", res.AdminSecret},
		{"Database password", res.DBSecret},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			mutedStyle.Render(fmt.Sprintf("%-20s", row.k)),
			normalStyle.Render(row.v)))
	}

	b.WriteString("\n")
	b.WriteString(errorStyle.Render("  Store the superadmin password now; it is not saved anywhere."))
	b.WriteString("\n\n")

	buttons := []string{"Create Another", "Exit"}
	for i, label := range buttons {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("  [ %s ]", label)))
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  [ %s ]", label)))
		}
	}
	b.WriteString(helpStyle.Render("\n\n  left/right: choose, enter: confirm"))

	return b.String()
}
