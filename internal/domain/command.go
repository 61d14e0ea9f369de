package domain

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
	Env     []string // KEY=value pairs added to the inherited environment
}

// NewShellCommand wraps a shell script in an ExecCommand run by sh -c.
func NewShellCommand(script string) *ExecCommand {
	return &ExecCommand{
		Program: "sh",
		Args:    []string{"-c", script},
	}
}
