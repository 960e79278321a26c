package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// removeConfirmModel is the last stop before teardown.
type removeConfirmModel struct {
	state  *wizardState
	cursor int
}

func newRemoveConfirmModel(state *wizardState) *removeConfirmModel {
	return &removeConfirmModel{state: state}
}

func (m *removeConfirmModel) Init() tea.Cmd {
	m.cursor = 1 // default to Cancel
	return nil
}

func (m *removeConfirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
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
			return m, func() tea.Msg { return navigateMsg{to: screenRemoveProgress} }
		}
		return m, tea.Quit
	case isEsc(key):
		return m, func() tea.Msg { return navigateMsg{to: screenPicker} }
	}
	return m, nil
}

func (m *removeConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Confirm Removal"))
	b.WriteString("\n\n")
	b.WriteString(borderStyle.Render(fmt.Sprintf(
		"Remove instance %s?\n\nThis stops the service and deletes its\ndatabases, role, files and nginx vhost.\nThere is no undo.",
		selectedStyle.Render(m.state.selected))))
	b.WriteString("\n\n")

	buttons := []string{"Remove", "Cancel"}
	for i, label := range buttons {
		if i == m.cursor {
			if i == 0 {
				b.WriteString(errorStyle.Render(fmt.Sprintf("  [ %s ]", label)))
			} else {
				b.WriteString(selectedStyle.Render(fmt.Sprintf("  [ %s ]", label)))
			}
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  [ %s ]", label)))
		}
	}

	b.WriteString(helpStyle.Render("\n\n  left/right: choose, enter: confirm, esc: back"))
	return b.String()
}
