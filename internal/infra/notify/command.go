// Package notify provides domain.Notifier implementations.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/runoshun/g2g/internal/domain"
)

const (
	logCategory    = "notify"
	commandTimeout = 5 * time.Second
)

// commandData is the template context. Every field is shell-quoted.
type commandData struct {
	Title string
	Body  string
	Kind  string
	Tag   string
}

// Command runs a configured shell command for each notice.
// Fields are ordered to minimize memory padding.
type Command struct {
	executor domain.CommandExecutor
	logger   domain.Logger
	tmpl     *template.Template
	program  string
}

// Ensure Command implements domain.Notifier.
var _ domain.Notifier = (*Command)(nil)

// NewCommand parses script as a text/template. The rendered script runs under sh -c.
func NewCommand(script string, executor domain.CommandExecutor, logger domain.Logger) (*Command, error) {
	tmpl, err := template.New("notify").Option("missingkey=error").Parse(script)
	if err != nil {
		return nil, fmt.Errorf("parse notify command: %w", err)
	}
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse notify command: empty command")
	}
	return &Command{
		executor: executor,
		logger:   logger,
		tmpl:     tmpl,
		program:  fields[0],
	}, nil
}

// RequestPermission reports whether the command's program resolves on PATH.
func (c *Command) RequestPermission(_ context.Context) bool {
	if strings.Contains(c.program, "{{") {
		return true
	}
	if _, err := c.executor.LookPath(c.program); err != nil {
		c.logger.Warn(0, logCategory, fmt.Sprintf("%s not found: %v", c.program, err))
		return false
	}
	return true
}

// Notify renders and runs the command. Failures are logged.
func (c *Command) Notify(ctx context.Context, notice domain.Notice) {
	script, err := c.Render(notice)
	if err != nil {
		c.logger.Warn(0, logCategory, err.Error())
		return
	}

	cmd := domain.NewShellCommand(script)
	cmd.Env = []string{
		"G2G_TITLE=" + notice.Title(),
		"G2G_BODY=" + notice.Body(),
		"G2G_KIND=" + string(notice.Kind),
		"G2G_TASK=" + notice.TaskTitle,
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	if out, err := c.executor.Execute(ctx, cmd); err != nil {
		msg := fmt.Sprintf("notify command failed: %v", err)
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			msg += ": " + trimmed
		}
		c.logger.Warn(0, logCategory, msg)
	}
}

// Render expands the command template for notice.
func (c *Command) Render(notice domain.Notice) (string, error) {
	var buf bytes.Buffer
	data := commandData{
		Title: shellQuote(notice.Title()),
		Body:  shellQuote(notice.Body()),
		Kind:  shellQuote(string(notice.Kind)),
		Tag:   shellQuote(notice.Tag()),
	}
	if err := c.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render notify command: %w", err)
	}
	return buf.String(), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
