package tui

import (
	"github.com/runoshun/g2g/internal/domain"
	"github.com/runoshun/g2g/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgStateUpdated is sent when the focus loop publishes a new state.
type MsgStateUpdated struct {
	State domain.FocusState
}

func (MsgStateUpdated) sealed() {}

// MsgLoopStopped is sent when the focus loop has ended.
type MsgLoopStopped struct{}

func (MsgLoopStopped) sealed() {}

// MsgCommandDone is sent when a focus command has been applied.
type MsgCommandDone struct {
	Command domain.FocusCommand
	Output  *usecase.FocusControlOutput
	Err     error
}

func (MsgCommandDone) sealed() {}

// MsgNotice is sent when a notification was delivered.
type MsgNotice struct {
	Text string
}

func (MsgNotice) sealed() {}
