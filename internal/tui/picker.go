package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// pickerModel lists the registered instances for the remove wizard.
type pickerModel struct {
	state  *wizardState
	cursor int
}

func newPickerModel(state *wizardState) *pickerModel {
	return &pickerModel{state: state}
}

func (m *pickerModel) Init() tea.Cmd {
	return nil
}

func (m *pickerModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isUp(key):
		if m.cursor > 0 {
			m.cursor--
		}
	case isDown(key):
		if m.cursor < len(m.state.instances)-1 {
			m.cursor++
		}
	case isEnter(key):
		m.state.selected = m.state.instances[m.cursor]
		return m, func() tea.Msg { return navigateMsg{to: screenRemoveConfirm} }
	case isEsc(key):
		return m, tea.Quit
	}
	return m, nil
}

func (m *pickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Remove Instance"))
	b.WriteString("\n\n")
	b.WriteString(normalStyle.Render("  Select the instance to remove:"))
	b.WriteString("\n\n")

	for i, name := range m.state.instances {
		radio := radioOff
		style := normalStyle
		if i == m.cursor {
			radio = radioOn
			style = selectedStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", radio, style.Render(name)))
	}

	b.WriteString(helpStyle.Render("\n  up/down: move, enter: select, esc: cancel"))
	return b.String()
}
