package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/odooctl/internal/odoo"
)

type nameInputModel struct {
	state  *wizardState
	reg    *odoo.Registry
	input  textinput.Model
	errMsg string
}

func newNameInputModel(state *wizardState) *nameInputModel {
	ti := textinput.New()
	ti.Placeholder = "demo"
	ti.CharLimit = 64
	ti.Width = 40

	return &nameInputModel{
		state: state,
		reg:   odoo.NewRegistry(state.host),
		input: ti,
	}
}

func (m *nameInputModel) Init() tea.Cmd {
	if m.state.name != "" {
		m.input.SetValue(m.state.name)
	}
	m.input.Focus()
	return textinput.Blink
}

func (m *nameInputModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && isEnter(msg) {
		val := strings.TrimSpace(m.input.Value())
		if err := m.reg.ValidateName(val); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if exists, err := m.reg.Exists(val); err == nil && exists {
			m.errMsg = "an instance with this name already exists"
			return m, nil
		}
		m.errMsg = ""
		m.state.name = val
		return m, func() tea.Msg { return navigateMsg{to: screenDomainInput} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *nameInputModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Instance Name"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Used as the database role, service name and directory name."))
	b.WriteString("\n\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg))
	}

	b.WriteString(helpStyle.Render("\n  enter: confirm  ctrl+c: quit"))
	return b.String()
}
