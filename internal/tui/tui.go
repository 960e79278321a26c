// Package tui holds the interactive create and remove wizards, built as a
// set of small screen models routed by a shared root model.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/example/odooctl/internal/odoo"
)

type screen int

const (
	screenNameInput screen = iota
	screenDomainInput
	screenEnterprise
	screenSSL
	screenEmailInput
	screenConfirm
	screenProgress
	screenComplete

	screenPicker
	screenRemoveConfirm
	screenRemoveProgress
)

type navigateMsg struct {
	to screen
}

type resetMsg struct{}

type wizardState struct {
	host odoo.Host

	name       string
	domain     string
	email      string
	enterprise bool
	ssl        bool

	// remove flow
	instances []string
	selected  string

	result   *odoo.CreateResult
	finished bool
}

type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (screenModel, tea.Cmd)
	View() string
}

type rootModel struct {
	current  screen
	state    *wizardState
	screens  map[screen]screenModel
	quitting bool
}

// newManager builds the production manager for a wizard run. The logger is
// a no-op: zap writing to stderr would tear up the alt screen, and the
// progress view already shows each step.
func newManager(state *wizardState) (*odoo.Manager, error) {
	return odoo.NewManager(state.host, zap.NewNop())
}

// RunCreateWizard walks through the create prompts and provisions the
// instance. Returns an error when the user aborts, so the CLI exits 1.
func RunCreateWizard(host odoo.Host) error {
	state := &wizardState{host: host}
	screens := map[screen]screenModel{
		screenNameInput:   newNameInputModel(state),
		screenDomainInput: newDomainInputModel(state),
		screenEnterprise:  newToggleModel(state, toggleEnterprise),
		screenSSL:         newToggleModel(state, toggleSSL),
		screenEmailInput:  newEmailInputModel(state),
		screenConfirm:     newConfirmModel(state),
		screenProgress:    newProgressModel(state),
		screenComplete:    newCompleteModel(state),
	}
	if err := runWizard(state, screens, screenNameInput); err != nil {
		return err
	}
	if !state.finished {
		return fmt.Errorf("aborted")
	}
	return nil
}

// RunRemoveWizard lists the registered instances, asks for a selection and
// an explicit confirmation, then tears the instance down.
func RunRemoveWizard(host odoo.Host) error {
	state := &wizardState{host: host}

	names, err := odoo.NewRegistry(host).List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return &odoo.NotFoundError{}
	}
	state.instances = names

	screens := map[screen]screenModel{
		screenPicker:         newPickerModel(state),
		screenRemoveConfirm:  newRemoveConfirmModel(state),
		screenRemoveProgress: newRemoveProgressModel(state),
	}
	if err := runWizard(state, screens, screenPicker); err != nil {
		return err
	}
	if !state.finished {
		return fmt.Errorf("aborted")
	}
	fmt.Printf("instance %s removed\n", state.selected)
	return nil
}

func runWizard(state *wizardState, screens map[screen]screenModel, start screen) error {
	m := rootModel{
		current: start,
		state:   state,
		screens: screens,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m rootModel) Init() tea.Cmd {
	return m.screens[m.current].Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}

	case navigateMsg:
		m.current = msg.to
		return m, m.screens[m.current].Init()

	case resetMsg:
		m.state.name = ""
		m.state.domain = ""
		m.state.email = ""
		m.state.enterprise = false
		m.state.ssl = false
		m.state.result = nil
		m.state.finished = false
		m.current = screenNameInput
		return m, m.screens[m.current].Init()
	}

	s, cmd := m.screens[m.current].Update(msg)
	m.screens[m.current] = s
	return m, cmd
}

func (m rootModel) View() string {
	if m.quitting {
		return ""
	}
	return m.screens[m.current].View()
}
