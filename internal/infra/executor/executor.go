// Package executor provides command execution functionality.
package executor

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/runoshun/g2g/internal/domain"
)

const waitDelay = 2 * time.Second

// Client implements domain.CommandExecutor interface.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command and returns its combined output.
// The process is killed when ctx is done.
func (c *Client) Execute(ctx context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	// #nosec G204 - cmd.Program and cmd.Args come from trusted UseCase code or user config
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	// Children of a killed shell may hold the output pipe open.
	execCmd.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}
	return execCmd.CombinedOutput()
}

// LookPath resolves program on PATH.
func (c *Client) LookPath(program string) (string, error) {
	return exec.LookPath(program)
}
