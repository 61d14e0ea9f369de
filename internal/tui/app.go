package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/g2g/internal/app"
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/focus"
	"github.com/runoshun/g2g/internal/usecase"
)

// maxBarWidth caps the progress bar on wide terminals.
const maxBarWidth = 60

// Model is the bubbletea model of the focus screen. It drives the plan
// through a running focus.Loop and renders every state the loop publishes.
type Model struct {
	// Dependencies (pointers first for alignment)
	control *usecase.FocusControl
	loop    *focus.Loop
	err     error

	// State
	state  domain.FocusState
	notice string
	result string

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	progress progress.Model

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	width         int
	height        int
}

// New creates the focus screen for a loop started by OpenFocus.
func New(c *app.Container, loop *focus.Loop) *Model {
	bar := progress.New(progress.WithGradient(string(Colors.Work), string(Colors.Warning)))
	bar.ShowPercentage = false

	m := &Model{
		control:  c.FocusControlUseCase(),
		loop:     loop,
		state:    loop.Snapshot(),
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		progress: bar,
		mode:     ModeNormal,
	}
	m.updateKeys()
	return m
}

// Init starts listening for loop updates.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Result describes how the screen ended, for printing after the program exits.
func (m *Model) Result() string {
	return m.result
}

// State returns the last state the screen rendered.
func (m *Model) State() domain.FocusState {
	return m.state
}

// waitForUpdate returns a command that blocks until the loop publishes.
func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.loop.Updates()
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return MsgLoopStopped{}
		}
		return MsgStateUpdated{State: state}
	}
}

// runCommand returns a command that applies cmd through the loop.
func (m *Model) runCommand(cmd domain.FocusCommand) tea.Cmd {
	control, loop := m.control, m.loop
	return func() tea.Msg {
		out, err := control.Execute(context.Background(), usecase.FocusControlInput{
			Driver:  loop,
			Command: cmd,
		})
		return MsgCommandDone{Command: cmd, Output: out, Err: err}
	}
}

// updateKeys enables only the bindings that can act in the current mode.
func (m *Model) updateKeys() {
	mode := m.state.Mode()
	m.keys.Toggle.SetEnabled(mode.Allows(domain.Play{}) || mode.Allows(domain.Pause{}))
	m.keys.Skip.SetEnabled(mode.Allows(domain.SkipSession{}))
	m.keys.SkipBreak.SetEnabled(mode.Allows(domain.SkipBreak{}))
	m.keys.Complete.SetEnabled(mode.Allows(domain.CompleteFocus{}))
	m.keys.Abandon.SetEnabled(mode.Allows(domain.AbandonFocus{}))
}

// Run shows the focus screen until the user quits or the loop stops.
// Notices written to notices are shown on the screen while it runs.
func Run(m *Model, notices *NoticeWriter) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	notices.Attach(p)
	defer notices.Attach(nil)
	_, err := p.Run()
	return err
}
