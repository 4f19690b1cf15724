package launch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"time"

	"demolauncher/internal/browse"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Launcher builds and runs commands for launchable entries.
type Launcher struct {
	Commands Commands
	Runner   Runner
	Tracer   oteltrace.Tracer
	Now      func() time.Time
}

// New returns a launcher. A nil tracer disables spans.
func New(cmds Commands, r Runner, tracer oteltrace.Tracer) *Launcher {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Launcher{Commands: cmds, Runner: r, Tracer: tracer, Now: time.Now}
}

// Launch starts entry and returns the command that eventually yields Finished
// (streaming runners yield Started and Output first). Failures never panic or
// escape as anything other than Finished.Err.
func (l *Launcher) Launch(ctx context.Context, id string, e browse.Entry) tea.Cmd {
	start := l.Now()
	cmd, err := l.Commands.Build(e)
	if err != nil {
		log.Printf("launch: %s %q: %v", e.Kind, e.Path, err)
		return finished(id, e, err, 0)
	}

	_, span := l.Tracer.Start(ctx, "launch "+e.Kind.String(),
		oteltrace.WithAttributes(
			attribute.String("demolauncher.launch.id", id),
			attribute.String("demolauncher.file.path", e.Path),
			attribute.String("demolauncher.launch.kind", e.Kind.String()),
			attribute.String("demolauncher.launch.executable", cmd.Path),
		))
	log.Printf("launch: start %s %q (%s)", e.Kind, e.Path, id)

	done := func(runErr error) tea.Msg {
		d := l.Now().Sub(start)
		runErr = describeExit(filepath.Base(e.Path), runErr)
		if runErr != nil {
			span.RecordError(runErr)
			span.SetStatus(codes.Error, runErr.Error())
			log.Printf("launch: %s %q failed after %s: %v", e.Kind, e.Path, d.Round(time.Millisecond), runErr)
		} else {
			span.SetStatus(codes.Ok, "")
			log.Printf("launch: %s %q finished in %s", e.Kind, e.Path, d.Round(time.Millisecond))
		}
		span.SetAttributes(attribute.Int("demolauncher.launch.exit_code", exitCode(runErr)))
		span.End()
		return Finished{ID: id, Entry: e, Err: runErr, Duration: d}
	}
	return l.Runner.Run(cmd, id, done)
}

func finished(id string, e browse.Entry, err error, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return Finished{ID: id, Entry: e, Err: err, Duration: d}
	}
}

// describeExit names the file in exit errors so the status line is self-explanatory.
func describeExit(name string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with code %d: %w", name, exitErr.ExitCode(), err)
	}
	return fmt.Errorf("%s: %w", name, err)
}

// exitCode returns 0 for success, the child's code for exit errors, -1 otherwise.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
