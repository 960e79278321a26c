package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/odooctl/internal/odoo"
)

type emailInputModel struct {
	state  *wizardState
	reg    *odoo.Registry
	input  textinput.Model
	errMsg string
}

func newEmailInputModel(state *wizardState) *emailInputModel {
	ti := textinput.New()
	ti.Placeholder = "ops@example.com"
	ti.CharLimit = 254
	ti.Width = 40

	return &emailInputModel{
		state: state,
		reg:   odoo.NewRegistry(state.host),
		input: ti,
	}
}

func (m *emailInputModel) Init() tea.Cmd {
	if m.state.email != "" {
		m.input.SetValue(m.state.email)
	}
	m.input.Focus()
	return textinput.Blink
}

func (m *emailInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			return m, func() tea.Msg { return navigateMsg{to: screenSSL} }
		}
		if isEnter(msg) {
			val := strings.TrimSpace(m.input.Value())
			if err := m.reg.ValidateEmail(val); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.state.email = val
			return m, func() tea.Msg { return navigateMsg{to: screenConfirm} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *emailInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Certificate Email"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Used for the ACME account and expiry notices."))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  enter: confirm  esc: back"))
	return b.String()
}
