package tui

import (
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// sender is the part of tea.Program a NoticeWriter needs.
type sender interface {
	Send(msg tea.Msg)
}

// NoticeWriter is the bell output while the focus screen runs. Each write
// rings the terminal bell on out and is shown on the screen as MsgNotice.
type NoticeWriter struct {
	out     io.Writer
	program sender
	mu      sync.Mutex
}

// NewNoticeWriter creates a NoticeWriter ringing the bell on out.
func NewNoticeWriter(out io.Writer) *NoticeWriter {
	return &NoticeWriter{out: out}
}

// Attach routes notices to p. A nil p drops them.
func (w *NoticeWriter) Attach(p sender) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.program = p
}

// Write implements io.Writer.
func (w *NoticeWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	p := w.program
	w.mu.Unlock()

	text := strings.TrimSpace(strings.ReplaceAll(string(b), "\a", ""))
	if p != nil && text != "" {
		p.Send(MsgNotice{Text: text})
	}
	if strings.Contains(string(b), "\a") {
		_, _ = io.WriteString(w.out, "\a")
	}
	return len(b), nil
}
