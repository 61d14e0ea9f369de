package domain

import (
	"fmt"
	"math"
)

// Fixed focus interval lengths in seconds.
const (
	WorkSessionSeconds      = 25 * 60
	ShortBreakSeconds       = 5 * 60
	LongBreakSeconds        = 15 * 60
	SessionsBeforeLongBreak = 4
)

// DefaultWarnHours is the estimate above which a plan carries a split warning.
const DefaultWarnHours = 4.0

// BreakKind classifies the break that follows a work session.
type BreakKind string

const (
	BreakNone  BreakKind = "none"
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// SessionDescriptor is one work interval plus its optional trailing break.
// Descriptors are produced by PlanSessions and never mutated.
type SessionDescriptor struct {
	BreakKind     BreakKind `json:"breakKind"`
	SessionNumber int       `json:"sessionNumber"`
	WorkSeconds   int       `json:"workSeconds"`
	BreakSeconds  int       `json:"breakSeconds"`
	HasBreak      bool      `json:"hasBreak"`
}

// PlanSessions splits a task estimate into focus sessions.
//
// Every session is a full 25-minute block except possibly the last, which
// absorbs the remainder. All sessions but the last are followed by a break;
// every fourth of those is long. A non-positive or non-finite estimate
// yields an empty plan, which callers treat as "cannot start".
func PlanSessions(durationHours float64) []SessionDescriptor {
	if !ValidDuration(durationHours) {
		return nil
	}

	totalSeconds := int(math.Round(durationHours * 3600))
	if totalSeconds <= 0 {
		return nil
	}
	count := (totalSeconds + WorkSessionSeconds - 1) / WorkSessionSeconds

	sessions := make([]SessionDescriptor, 0, count)
	for i := 1; i <= count; i++ {
		work := min(WorkSessionSeconds, totalSeconds-(i-1)*WorkSessionSeconds)

		desc := SessionDescriptor{
			SessionNumber: i,
			WorkSeconds:   work,
			BreakKind:     BreakNone,
		}
		if i < count {
			if i%SessionsBeforeLongBreak == 0 {
				desc.BreakKind = BreakLong
				desc.BreakSeconds = LongBreakSeconds
			} else {
				desc.BreakKind = BreakShort
				desc.BreakSeconds = ShortBreakSeconds
			}
			desc.HasBreak = true
		}
		sessions = append(sessions, desc)
	}
	return sessions
}

// PlanSummary aggregates a plan for previews.
type PlanSummary struct {
	Warning             string
	Sessions            int
	WorkSeconds         int
	BreakSeconds        int
	EstimatedCompletion int // work + breaks, in seconds
}

// SummarizePlan plans durationHours and totals the result.
// A warning is attached when the estimate exceeds warnHours (<= 0 uses DefaultWarnHours).
func SummarizePlan(durationHours, warnHours float64) PlanSummary {
	if warnHours <= 0 {
		warnHours = DefaultWarnHours
	}
	sessions := PlanSessions(durationHours)

	var summary PlanSummary
	summary.Sessions = len(sessions)
	for _, s := range sessions {
		summary.WorkSeconds += s.WorkSeconds
		summary.BreakSeconds += s.BreakSeconds
	}
	summary.EstimatedCompletion = summary.WorkSeconds + summary.BreakSeconds
	if len(sessions) > 0 && durationHours > warnHours {
		summary.Warning = fmt.Sprintf(
			"This task is %sh long. Consider splitting it into smaller tasks for better focus.",
			formatHours(durationHours))
	}
	return summary
}

// PlanPreview returns a one-line description such as
// "2h task = 5 × 25min sessions (2h 30m total)". Empty plans yield "".
func PlanPreview(durationHours float64) string {
	summary := SummarizePlan(durationHours, 0)
	switch summary.Sessions {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%sh task = 1 session (%s)",
			formatHours(durationHours), FormatDuration(summary.EstimatedCompletion))
	default:
		return fmt.Sprintf("%sh task = %d × 25min sessions (%s total)",
			formatHours(durationHours), summary.Sessions, FormatDuration(summary.EstimatedCompletion))
	}
}

// FormatDuration renders seconds as "1h 30m", "2h" or "45m".
// Partial minutes are rounded up so a non-zero duration never prints "0m".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := (seconds + 59) / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// FormatTimer renders seconds as MM:SS.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%g", h)
}
