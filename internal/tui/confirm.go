package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	state  *wizardState
	cursor int
}

func newConfirmModel(state *wizardState) *confirmModel {
	return &confirmModel{state: state}
}

func (m *confirmModel) Init() tea.Cmd {
	m.cursor = 0
	return nil
}

func (m *confirmModel) backScreen() screen {
	if m.state.ssl {
		return screenEmailInput
	}
	return screenSSL
}

func (m *confirmModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			to := m.backScreen()
			return m, func() tea.Msg { return navigateMsg{to: to} }
		}
		if (isLeft(msg) || isUp(msg)) && m.cursor > 0 {
			m.cursor--
		}
		if (isRight(msg) || isDown(msg)) && m.cursor < 2 {
			m.cursor++
		}
		if isEnter(msg) {
			switch m.cursor {
			case 0:
				return m, func() tea.Msg { return navigateMsg{to: screenProgress} }
			case 1:
				to := m.backScreen()
				return m, func() tea.Msg { return navigateMsg{to: to} }
			case 2:
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func (m *confirmModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Confirm"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Name:        %s\n", selectedStyle.Render(m.state.name)))
	b.WriteString(fmt.Sprintf("  Domain:      %s\n", selectedStyle.Render(m.state.domain)))
	b.WriteString(fmt.Sprintf("  Enterprise:  %s\n", normalStyle.Render(yesNo(m.state.enterprise))))
	b.WriteString(fmt.Sprintf("  HTTPS:       %s\n", normalStyle.Render(yesNo(m.state.ssl))))
	if m.state.ssl {
		b.WriteString(fmt.Sprintf("  Email:       %s\n", normalStyle.Render(m.state.email)))
	}

	b.WriteString("\n")
	cmdLine := fmt.Sprintf("  $ odooctl create --name %s --domain %s", m.state.name, m.state.domain)
	if m.state.enterprise {
		cmdLine += " --enterprise"
	}
	if m.state.ssl {
		cmdLine += fmt.Sprintf(" --ssl --email %s", m.state.email)
	}
	b.WriteString(mutedStyle.Render(cmdLine))
	b.WriteString("\n\n")

	buttons := []string{"Create", "Back", "Cancel"}
	for i, btn := range buttons {
		if i == m.cursor {
			b.WriteString("  " + borderStyle.Render(selectedStyle.Render(btn)))
		} else {
			b.WriteString("  " + normalStyle.Render("["+btn+"]"))
		}
		b.WriteString("  ")
	}

	b.WriteString(helpStyle.Render("\n\n  left/right: navigate  enter: select  esc: back"))
	return b.String()
}
