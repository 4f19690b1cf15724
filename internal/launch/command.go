// Package launch turns a selected script or notebook into a child process and
// reports its completion back to the UI as Bubble Tea messages.
package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"demolauncher/internal/browse"

	"github.com/mattn/go-shellwords"
)

var (
	// ErrUnsupportedKind is returned for entries that do not spawn a process.
	ErrUnsupportedKind = errors.New("entry is not a script or notebook")
	// ErrEmptyCommand is returned when no executable is configured for a kind.
	ErrEmptyCommand = errors.New("no executable configured")
)

// ParseCommand splits a configured command string ("python3 -u") into argv.
// An empty string yields a nil argv and no error.
func ParseCommand(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	argv, err := shellwords.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", s, err)
	}
	return argv, nil
}

// CheckExecutable verifies argv[0] resolves to an executable file, either as a
// path or via PATH.
func CheckExecutable(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", ErrEmptyCommand
	}
	p, err := exec.LookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("executable %q not found: %w", argv[0], err)
	}
	return p, nil
}

// Resolve returns argv with argv[0] replaced by its absolute path. Launches run
// in the file's directory, so a relative interpreter must be pinned to the
// directory it was found from.
func Resolve(argv []string) ([]string, error) {
	p, err := CheckExecutable(argv)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", p, err)
	}
	out := append([]string{abs}, argv[1:]...)
	return out, nil
}

// Commands holds the interpreter argv for each launchable kind.
type Commands struct {
	Python   []string
	Notebook []string
}

// For returns the base argv for kind.
func (c Commands) For(kind browse.Kind) ([]string, error) {
	var argv []string
	switch kind {
	case browse.KindScript:
		argv = c.Python
	case browse.KindNotebook:
		argv = c.Notebook
	default:
		return nil, fmt.Errorf("%s: %w", kind, ErrUnsupportedKind)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrEmptyCommand)
	}
	return argv, nil
}

// Build returns the command that runs entry: the configured argv followed by
// the file path, with the file's directory as working directory.
func (c Commands) Build(e browse.Entry) (*exec.Cmd, error) {
	base, err := c.For(e.Kind)
	if err != nil {
		return nil, err
	}
	args := append(append([]string(nil), base[1:]...), e.Path)
	cmd := exec.Command(base[0], args...)
	cmd.Dir = filepath.Dir(e.Path)
	return cmd, nil
}
