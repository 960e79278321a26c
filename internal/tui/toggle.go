package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type toggleKind int

const (
	toggleEnterprise toggleKind = iota
	toggleSSL
)

// toggleModel is a shared yes/no screen for the enterprise and SSL
// questions.
type toggleModel struct {
	state  *wizardState
	kind   toggleKind
	cursor int // 0 = no, 1 = yes
}

func newToggleModel(state *wizardState, kind toggleKind) *toggleModel {
	return &toggleModel{state: state, kind: kind}
}

func (m *toggleModel) value() bool {
	if m.kind == toggleEnterprise {
		return m.state.enterprise
	}
	return m.state.ssl
}

func (m *toggleModel) setValue(v bool) {
	if m.kind == toggleEnterprise {
		m.state.enterprise = v
	} else {
		m.state.ssl = v
	}
}

func (m *toggleModel) Init() tea.Cmd {
	m.cursor = 0
	if m.value() {
		m.cursor = 1
	}
	return nil
}

func (m *toggleModel) back() screen {
	if m.kind == toggleEnterprise {
		return screenDomainInput
	}
	return screenEnterprise
}

func (m *toggleModel) next() screen {
	if m.kind == toggleEnterprise {
		return screenSSL
	}
	if m.state.ssl {
		return screenEmailInput
	}
	return screenConfirm
}

func (m *toggleModel) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isEsc(msg) {
			to := m.back()
			return m, func() tea.Msg { return navigateMsg{to: to} }
		}
		if (isUp(msg) || isLeft(msg)) && m.cursor > 0 {
			m.cursor--
		}
		if (isDown(msg) || isRight(msg)) && m.cursor < 1 {
			m.cursor++
		}
		if isEnter(msg) {
			m.setValue(m.cursor == 1)
			to := m.next()
			return m, func() tea.Msg { return navigateMsg{to: to} }
		}
	}
	return m, nil
}

func (m *toggleModel) View() string {
	var b strings.Builder

	if m.kind == toggleEnterprise {
		b.WriteString(titleStyle.Render("Enterprise Addons"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Requires the enterprise source tree on this host (odooctl provision --enterprise)."))
	} else {
		b.WriteString(titleStyle.Render("HTTPS"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Obtain a certificate and terminate TLS at nginx."))
	}
	b.WriteString("\n\n")

	options := []string{"no", "yes"}
	for i, opt := range options {
		radio := radioOff
		label := normalStyle.Render(opt)
		if i == m.cursor {
			radio = radioOn
			label = selectedStyle.Render(opt)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", radio, label))
	}

	b.WriteString(helpStyle.Render("\n  up/down: navigate  enter: select  esc: back"))
	return b.String()
}
