package launch

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"

	tea "github.com/charmbracelet/bubbletea"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

const maxLineBytes = 1 << 20

// ErrRunnerClosed is reported for launches attempted after Close.
var ErrRunnerClosed = errors.New("launcher is shutting down")

// PTYRunner runs the child in a pseudo-terminal and streams its output while
// the UI stays on screen. The child gets no stdin beyond the PTY itself.
// Close kills running children; the zero value is ready to use.
type PTYRunner struct {
	Size Size

	mu     sync.Mutex
	active map[*exec.Cmd]struct{}
	stop   chan struct{}
	closed bool
}

// Ensure PTYRunner implements Runner.
var _ Runner = (*PTYRunner)(nil)

// Run implements Runner. The returned command yields Started, or the Finished
// message directly when the child cannot be started.
func (r *PTYRunner) Run(cmd *exec.Cmd, id string, done DoneFunc) tea.Cmd {
	return func() tea.Msg {
		f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: r.Size.Rows, Cols: r.Size.Cols})
		if err != nil {
			return done(err)
		}
		stop, ok := r.track(cmd)
		if !ok {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			_ = f.Close()
			return done(ErrRunnerClosed)
		}
		ch := make(chan tea.Msg, 64)
		stream := Stream(ch)
		send := func(m tea.Msg) {
			select {
			case ch <- m:
			case <-stop:
			}
		}
		go func() {
			defer close(ch)
			defer r.untrack(cmd)
			sc := bufio.NewScanner(f)
			sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
			// Scan stops with EIO once the child closes its side; that is the normal end.
			for sc.Scan() {
				send(Output{ID: id, Line: strings.TrimRight(sc.Text(), "\r"), Stream: stream})
			}
			// Drain anything left after an oversized line so the child never blocks on a full PTY.
			_, _ = io.Copy(io.Discard, f)
			werr := cmd.Wait()
			_ = f.Close()
			send(done(werr))
		}()
		return Started{ID: id, Stream: stream}
	}
}

// Close kills every running child and stops delivering their messages.
func (r *PTYRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.stopChan())
	var errs []error
	for cmd := range r.active {
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// stopChan must be called with mu held.
func (r *PTYRunner) stopChan() chan struct{} {
	if r.stop == nil {
		r.stop = make(chan struct{})
	}
	return r.stop
}

func (r *PTYRunner) track(cmd *exec.Cmd) (<-chan struct{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stop := r.stopChan()
	if r.closed {
		return stop, false
	}
	if r.active == nil {
		r.active = make(map[*exec.Cmd]struct{})
	}
	r.active[cmd] = struct{}{}
	return stop, true
}

func (r *PTYRunner) untrack(cmd *exec.Cmd) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, cmd)
}
