package launch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"demolauncher/internal/browse"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// fakeRunner records commands and finishes them with a fixed error.
type fakeRunner struct {
	cmds []*exec.Cmd
	err  error
}

func (f *fakeRunner) Run(cmd *exec.Cmd, _ string, done DoneFunc) tea.Cmd {
	f.cmds = append(f.cmds, cmd)
	return func() tea.Msg { return done(f.err) }
}

func script(path string) browse.Entry {
	return browse.Entry{Name: filepath.Base(path), Path: path, Kind: browse.KindScript}
}

func TestParseCommand(t *testing.T) {
	argv, err := ParseCommand(`python3 -u -X "dev mode"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-u", "-X", "dev mode"}, argv)

	argv, err = ParseCommand("   ")
	require.NoError(t, err)
	assert.Nil(t, argv)

	_, err = ParseCommand(`python3 "unterminated`)
	assert.Error(t, err)
}

func TestCheckExecutable(t *testing.T) {
	_, err := CheckExecutable(nil)
	assert.ErrorIs(t, err, ErrEmptyCommand)

	_, err = CheckExecutable([]string{filepath.Join(t.TempDir(), "venv", "bin", "python")})
	assert.Error(t, err)

	if runtime.GOOS != "windows" {
		p, err := CheckExecutable([]string{"sh"})
		require.NoError(t, err)
		assert.NotEmpty(t, p)
	}
}

func TestResolve_RelativeInterpreterRunsFromFileDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script interpreter")
	}
	work := t.TempDir()
	t.Chdir(work)
	py := filepath.Join(work, "venv", "bin", "python")
	require.NoError(t, os.MkdirAll(filepath.Dir(py), 0o755))
	require.NoError(t, os.WriteFile(py, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	demo := filepath.Join(work, "demos", "pts", "a.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(demo), 0o755))
	require.NoError(t, os.WriteFile(demo, []byte("print('a')\n"), 0o644))

	argv, err := Resolve([]string{"venv/bin/python", "-u"})
	require.NoError(t, err)
	require.Len(t, argv, 2)
	assert.True(t, filepath.IsAbs(argv[0]), "interpreter pinned to an absolute path: %s", argv[0])
	assert.True(t, strings.HasSuffix(argv[0], filepath.Join("venv", "bin", "python")))
	assert.Equal(t, "-u", argv[1])

	cmd, err := Commands{Python: argv}.Build(script(demo))
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(demo), cmd.Dir)
	assert.NoError(t, cmd.Run())
}

func TestResolve_Missing(t *testing.T) {
	_, err := Resolve([]string{filepath.Join(t.TempDir(), "python")})
	assert.Error(t, err)
	_, err = Resolve(nil)
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestCommands_Build(t *testing.T) {
	c := Commands{
		Python:   []string{"python3", "-u"},
		Notebook: []string{"jupyter-lab", "--no-browser"},
	}
	cmd, err := c.Build(script("/demos/pts/read_pts.py"))
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-u", "/demos/pts/read_pts.py"}, cmd.Args)
	assert.Equal(t, "/demos/pts", cmd.Dir)

	cmd, err = c.Build(browse.Entry{Path: "/demos/nb/a.ipynb", Kind: browse.KindNotebook})
	require.NoError(t, err)
	assert.Equal(t, []string{"jupyter-lab", "--no-browser", "/demos/nb/a.ipynb"}, cmd.Args)

	_, err = c.Build(browse.Entry{Path: "/demos/README.md", Kind: browse.KindDocument})
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	_, err = Commands{Python: []string{"python3"}}.Build(browse.Entry{Path: "/a.ipynb", Kind: browse.KindNotebook})
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestCommands_BuildDoesNotAliasBase(t *testing.T) {
	base := make([]string, 2, 8)
	base[0], base[1] = "python3", "-u"
	c := Commands{Python: base}
	a, err := c.Build(script("/x/a.py"))
	require.NoError(t, err)
	b, err := c.Build(script("/x/b.py"))
	require.NoError(t, err)
	assert.Equal(t, "/x/a.py", a.Args[2])
	assert.Equal(t, "/x/b.py", b.Args[2])
}

func TestLauncher_LaunchSuccess(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	r := &fakeRunner{}
	l := New(Commands{Python: []string{"python3"}}, r, tp.Tracer("test"))

	msg := l.Launch(context.Background(), "id-1", script("/demos/a.py"))()
	fin, ok := msg.(Finished)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "id-1", fin.ID)
	assert.NoError(t, fin.Err)
	require.Len(t, r.cmds, 1)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "launch script", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

func TestLauncher_LaunchFailureIsReported(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	boom := errors.New("boom")
	r := &fakeRunner{err: boom}
	l := New(Commands{Python: []string{"python3"}}, r, tp.Tracer("test"))

	fin := l.Launch(context.Background(), "id-2", script("/demos/a.py"))().(Finished)
	assert.ErrorIs(t, fin.Err, boom)
	assert.Contains(t, fin.Err.Error(), "a.py")

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestLauncher_BuildErrorFinishesWithoutRunning(t *testing.T) {
	r := &fakeRunner{}
	l := New(Commands{}, r, nil)
	fin := l.Launch(context.Background(), "id-3", script("/demos/a.py"))().(Finished)
	assert.ErrorIs(t, fin.Err, ErrEmptyCommand)
	assert.Empty(t, r.cmds)
}

func TestLauncher_DurationUsesClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(3 * time.Second)}
	l := New(Commands{Python: []string{"python3"}}, &fakeRunner{}, nil)
	l.Now = func() time.Time {
		t0 := ticks[0]
		ticks = ticks[1:]
		return t0
	}
	fin := l.Launch(context.Background(), "id", script("/a.py"))().(Finished)
	assert.Equal(t, 3*time.Second, fin.Duration)
}

func TestDescribeExit(t *testing.T) {
	assert.NoError(t, describeExit("a.py", nil))
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	err := exec.Command("sh", "-c", "exit 3").Run()
	got := describeExit("a.py", err)
	assert.EqualError(t, got, "a.py exited with code 3: exit status 3")
	assert.Equal(t, 3, exitCode(got))
	assert.Equal(t, -1, exitCode(errors.New("not started")))
}

func TestExecRunner_ReturnsCmd(t *testing.T) {
	cmd := ExecRunner{}.Run(exec.Command("true"), "id", func(error) tea.Msg { return nil })
	assert.NotNil(t, cmd)
}

func drain(t *testing.T, first tea.Msg) ([]string, Finished) {
	t.Helper()
	started, ok := first.(Started)
	require.True(t, ok, "expected Started, got %T", first)
	var lines []string
	next := started.Stream.Next()
	deadline := time.After(10 * time.Second)
	for {
		got := make(chan tea.Msg, 1)
		go func(c tea.Cmd) { got <- c() }(next)
		select {
		case msg := <-got:
			switch m := msg.(type) {
			case Output:
				lines = append(lines, m.Line)
				next = m.Stream.Next()
			case Finished:
				return lines, m
			default:
				t.Fatalf("unexpected message %T", msg)
			}
		case <-deadline:
			t.Fatal("timed out draining pty stream")
		}
	}
}

func TestPTYRunner_StreamsOutputAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported")
	}
	dir := t.TempDir()
	l := New(Commands{Python: []string{"sh", "-c", "echo hello; echo world; exit 2", "sh"}},
		&PTYRunner{Size: Size{Rows: 24, Cols: 80}}, nil)

	lines, fin := drain(t, l.Launch(context.Background(), "pty-1", script(filepath.Join(dir, "x.py")))())
	assert.Equal(t, []string{"hello", "world"}, lines)
	require.Error(t, fin.Err)
	assert.Equal(t, 2, exitCode(fin.Err))
	assert.Equal(t, "pty-1", fin.ID)
}

func TestPTYRunner_CloseKillsRunningChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported")
	}
	dir := t.TempDir()
	r := &PTYRunner{Size: Size{Rows: 24, Cols: 80}}
	l := New(Commands{Python: []string{"sh", "-c", "exec sleep 30", "sh"}}, r, nil)

	msg := l.Launch(context.Background(), "pty-3", script(filepath.Join(dir, "x.py")))()
	started, ok := msg.(Started)
	require.True(t, ok, "expected Started, got %T", msg)

	// Nobody reads the stream, as after the program has quit.
	require.NoError(t, r.Close())
	closed := make(chan struct{})
	go func() {
		for range started.Stream {
		}
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(10 * time.Second):
		t.Fatal("stream still open after Close")
	}

	msg = l.Launch(context.Background(), "pty-4", script(filepath.Join(dir, "x.py")))()
	fin, ok := msg.(Finished)
	require.True(t, ok, "expected Finished, got %T", msg)
	assert.ErrorIs(t, fin.Err, ErrRunnerClosed)
	assert.NoError(t, r.Close(), "second Close is a no-op")
}

func TestPTYRunner_StartFailure(t *testing.T) {
	l := New(Commands{Python: []string{filepath.Join(t.TempDir(), "missing-python")}},
		&PTYRunner{Size: Size{Rows: 24, Cols: 80}}, nil)
	msg := l.Launch(context.Background(), "pty-2", script("/a.py"))()
	fin, ok := msg.(Finished)
	require.True(t, ok, "expected Finished, got %T", msg)
	assert.Error(t, fin.Err)
}
