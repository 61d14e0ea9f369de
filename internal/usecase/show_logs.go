package usecase

import (
	"context"
	"fmt"
)

// DefaultLogLines is how many lines ShowLogs returns when Lines is 0.
const DefaultLogLines = 50

// ShowLogsInput contains the parameters for showing logs.
type ShowLogsInput struct {
	TaskID int // Task ID to show logs for (0 = global log)
	Lines  int // Number of lines to display from the end (0 = DefaultLogLines, < 0 = all)
}

// ShowLogsOutput contains the log lines.
type ShowLogsOutput struct {
	Lines []string
}

// ShowLogs is the use case for reading the global or a task log.
type ShowLogs struct {
	logs LogTailer
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(logs LogTailer) *ShowLogs {
	return &ShowLogs{logs: logs}
}

// Execute returns the last lines of the log. A missing log yields no lines.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	n := in.Lines
	if n == 0 {
		n = DefaultLogLines
	}
	lines, err := uc.logs.Tail(in.TaskID, n)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return &ShowLogsOutput{Lines: lines}, nil
}
