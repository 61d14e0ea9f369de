package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/runoshun/g2g/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("g2g focus"))
	b.WriteString("\n")

	if !m.state.IsActive() {
		b.WriteString(m.styles.PhaseIdle.Render("No active focus plan."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewTask())
		b.WriteString(m.viewTimer())
		b.WriteString(m.viewSessions())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.mode == ModeConfirm {
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return m.styles.App.Render(b.String())
}

// viewTask renders the task title line.
func (m *Model) viewTask() string {
	ref := m.state.ActiveTask
	meta := "quick timer"
	if !ref.Quick && ref.ID > 0 {
		meta = fmt.Sprintf("task #%d", ref.ID)
	}
	meta = fmt.Sprintf("(%s, %gh)", meta, ref.DurationHours)

	room := m.width - runewidth.StringWidth(meta) - 6
	title := clipTitle(ref.Title, room)
	return m.styles.TaskTitle.Render(title) + " " + m.styles.TaskMeta.Render(meta) + "\n"
}

// viewTimer renders the phase, the countdown and the progress bar.
func (m *Model) viewTimer() string {
	mode := m.state.Mode()
	var b strings.Builder

	phase := mode.Display()
	if !mode.IsTerminal() {
		phase = fmt.Sprintf("%s · session %d of %d", phase, m.state.CurrentIndex+1, len(m.state.Sessions))
	}
	b.WriteString(m.styles.PhaseStyle(mode).Render(phase))
	b.WriteString("\n")

	timer := m.styles.Timer.Render(domain.FormatTimer(m.state.SecondsRemaining))
	if mode == domain.ModeWorkPaused || mode == domain.ModeBreakPaused {
		timer += "  " + m.styles.Paused.Render("paused")
	}
	b.WriteString(timer)
	b.WriteString("\n")

	b.WriteString(m.progress.ViewAs(phaseProgress(m.state)))
	b.WriteString("\n\n")
	return b.String()
}

// viewSessions renders the session checklist, one line per session clipped
// to the content width.
func (m *Model) viewSessions() string {
	contentWidth := max(m.width-4, 10)
	var b strings.Builder
	for i, s := range m.state.Sessions {
		style := m.styles.SessionPending
		marker := "·"
		switch {
		case m.state.IsCompleted(i):
			style, marker = m.styles.SessionDone, "✓"
		case i == m.state.CurrentIndex && !m.state.AllComplete():
			style, marker = m.styles.SessionCurrent, "▶"
		}
		line := style.Render(fmt.Sprintf("%s %s", marker, sessionLine(s)))
		b.WriteString(truncate.StringWithTail(line, uint(contentWidth), ""))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewConfirmDialog() string {
	prompt := fmt.Sprintf("%s this focus plan? (y/n)", capitalize(m.confirmAction.String()))
	if m.confirmAction == ConfirmComplete && m.state.ActiveTask != nil && !m.state.ActiveTask.Quick {
		prompt = fmt.Sprintf("Mark task #%d complete? (y/n)", m.state.ActiveTask.ID)
	}
	return m.styles.Dialog.Render(m.styles.DialogPrompt.Render(prompt))
}

// sessionLine describes one planned session, e.g. "Session 2  25m + 5m break".
func sessionLine(s domain.SessionDescriptor) string {
	line := fmt.Sprintf("Session %d  %s", s.SessionNumber, domain.FormatDuration(s.WorkSeconds))
	switch s.BreakKind {
	case domain.BreakShort:
		line += fmt.Sprintf(" + %s break", domain.FormatDuration(s.BreakSeconds))
	case domain.BreakLong:
		line += fmt.Sprintf(" + %s long break", domain.FormatDuration(s.BreakSeconds))
	case domain.BreakNone:
	}
	return line
}

// phaseProgress returns the elapsed fraction of the current phase.
func phaseProgress(state domain.FocusState) float64 {
	if state.AllComplete() {
		return 1
	}
	total := state.PhaseTotal()
	if total <= 0 {
		return 0
	}
	return 1 - float64(state.SecondsRemaining)/float64(total)
}

// clipTitle shortens s to width display cells.
func clipTitle(s string, width int) string {
	if width < 4 {
		width = 4
	}
	return runewidth.Truncate(s, width, "…")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
