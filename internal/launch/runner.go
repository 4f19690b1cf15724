package launch

import (
	"os/exec"
	"time"

	"demolauncher/internal/browse"

	tea "github.com/charmbracelet/bubbletea"
)

// DoneFunc converts the child's exit into the message that ends a launch.
type DoneFunc func(err error) tea.Msg

// Runner is the integration point for running a built command.
// Implementations hand the terminal to the child, capture it in a PTY, or
// fake it in tests. done must be called exactly once.
type Runner interface {
	Run(cmd *exec.Cmd, id string, done DoneFunc) tea.Cmd
}

// Finished is sent once per launch after the child exited or failed to start.
// Err is nil only for a zero exit code.
type Finished struct {
	ID       string
	Entry    browse.Entry
	Err      error
	Duration time.Duration
}

// Started is sent by streaming runners once the child is running.
type Started struct {
	ID     string
	Stream Stream
}

// Output carries one line of child output from a streaming runner.
type Output struct {
	ID     string
	Line   string
	Stream Stream
}

// Stream delivers Output messages followed by the launch's Finished message.
type Stream <-chan tea.Msg

// Next waits for the next message on the stream. Returns nil once closed.
func (s Stream) Next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-s
		if !ok {
			return nil
		}
		return msg
	}
}

// ExecRunner suspends the UI and gives the child the terminal until it exits.
type ExecRunner struct{}

// Ensure ExecRunner implements Runner.
var _ Runner = ExecRunner{}

// Run implements Runner.
func (ExecRunner) Run(cmd *exec.Cmd, _ string, done DoneFunc) tea.Cmd {
	return tea.ExecProcess(cmd, tea.ExecCallback(done))
}
