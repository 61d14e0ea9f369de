package domain

import "fmt"

// NoticeKind identifies a scheduler transition that users are told about.
type NoticeKind string

const (
	NoticeWorkSessionComplete NoticeKind = "work_session_complete"
	NoticeBreakComplete       NoticeKind = "break_complete"
	NoticeTaskComplete        NoticeKind = "task_complete"
)

// Notice is a notification emitted by the focus state machine.
type Notice struct {
	Kind      NoticeKind
	TaskTitle string
}

// Title returns the headline shown to the user.
func (n Notice) Title() string {
	switch n.Kind {
	case NoticeWorkSessionComplete:
		return "Session Complete!"
	case NoticeBreakComplete:
		return "Break Over!"
	case NoticeTaskComplete:
		return "Task Complete!"
	default:
		return string(n.Kind)
	}
}

// Body returns the notification text.
func (n Notice) Body() string {
	switch n.Kind {
	case NoticeWorkSessionComplete:
		return "Great work! Take a well-deserved break."
	case NoticeBreakComplete:
		return "Ready to get back to work? Let's crush the next session!"
	case NoticeTaskComplete:
		if n.TaskTitle == "" {
			return "Amazing work!"
		}
		return fmt.Sprintf("You crushed %q! Amazing work!", n.TaskTitle)
	default:
		return ""
	}
}

// Tag groups notifications of the same kind so desktops can replace stale ones.
func (n Notice) Tag() string {
	switch n.Kind {
	case NoticeWorkSessionComplete:
		return "g2g-session"
	case NoticeBreakComplete:
		return "g2g-break"
	default:
		return "g2g-task"
	}
}
