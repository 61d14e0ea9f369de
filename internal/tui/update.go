package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/g2g/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(maxBarWidth, max(msg.Width-8, 10))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case MsgStateUpdated:
		m.setState(msg.State)
		return m, m.waitForUpdate()

	case MsgLoopStopped:
		return m, tea.Quit

	case MsgNotice:
		m.notice = msg.Text
		return m, nil

	case MsgCommandDone:
		return m.handleCommandDone(msg)
	}

	return m, nil
}

func (m *Model) setState(state domain.FocusState) {
	m.state = state
	m.updateKeys()
}

// handleKeyMsg dispatches key presses by mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeConfirm {
		return m.handleConfirmMode(msg)
	}
	return m.handleNormalMode(msg)
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.state.Mode().IsRunning() {
			return m, m.runCommand(domain.Pause{})
		}
		return m, m.runCommand(domain.Play{})

	case key.Matches(msg, m.keys.Skip):
		return m, m.runCommand(domain.SkipSession{})

	case key.Matches(msg, m.keys.SkipBreak):
		return m, m.runCommand(domain.SkipBreak{})

	case key.Matches(msg, m.keys.Complete):
		m.mode = ModeConfirm
		m.confirmAction = ConfirmComplete
		return m, nil

	case key.Matches(msg, m.keys.Abandon):
		m.mode = ModeConfirm
		m.confirmAction = ConfirmAbandon
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirmAction
	m.mode = ModeNormal
	m.confirmAction = ConfirmNone

	if key.Matches(msg, m.keys.Confirm) {
		return m, m.runCommand(action.Command())
	}
	return m, nil
}

func (m *Model) handleCommandDone(msg MsgCommandDone) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.err = nil

	// The new state arrives through the loop's updates; a tick published
	// after the command may already be on screen.
	if !msg.Output.Applied {
		return m, nil
	}
	switch msg.Command.(type) {
	case domain.CompleteFocus:
		m.result = completionResult(msg)
		return m, tea.Quit
	case domain.AbandonFocus:
		m.result = "Focus plan abandoned."
		return m, tea.Quit
	}
	return m, nil
}

func completionResult(msg MsgCommandDone) string {
	if task := msg.Output.CompletedTask; task != nil {
		return fmt.Sprintf("Task #%d marked complete: %s", task.ID, task.Title)
	}
	if ref := msg.Output.Previous.ActiveTask; ref != nil {
		return fmt.Sprintf("Focus complete: %s", ref.Title)
	}
	return "Focus complete."
}
