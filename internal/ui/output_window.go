package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"demolauncher/internal/browse"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxOutputLines bounds the scrollback kept for one run.
const maxOutputLines = 5000

// OutputWindow displays live child output with scrollback.
// Shown as an overlay for PTY launches; Esc dismisses once the child exited.
type OutputWindow struct {
	ID      string
	Entry   browse.Entry
	Lines   []string
	Running bool
	Err     error
	Elapsed time.Duration

	viewport viewport.Model
}

// Ensure OutputWindow implements View.
var _ View = (*OutputWindow)(nil)

const defaultOutputWidth = 70
const defaultOutputHeight = 18

// NewOutputWindow creates an empty window for the launch id of e.
func NewOutputWindow(id string, e browse.Entry, width, height int) *OutputWindow {
	vp := viewport.New(defaultOutputWidth, defaultOutputHeight)
	vp.Style = Styles.Box
	w := &OutputWindow{ID: id, Entry: e, Running: true, viewport: vp}
	w.resize(width, height)
	w.refreshContent()
	return w
}

// Append adds one line of output and scrolls to the bottom.
func (w *OutputWindow) Append(line string) {
	w.Lines = append(w.Lines, line)
	if over := len(w.Lines) - maxOutputLines; over > 0 {
		w.Lines = w.Lines[over:]
	}
	w.refreshContent()
}

// Finish marks the run as ended.
func (w *OutputWindow) Finish(err error, elapsed time.Duration) {
	w.Running = false
	w.Err = err
	w.Elapsed = elapsed
	if err != nil {
		w.viewport.Style = Styles.BoxDanger
	}
	w.refreshContent()
}

func (w *OutputWindow) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	vw := width - 4
	vh := height/2 + 4
	if vw < 40 {
		vw = 40
	}
	if vh < 12 {
		vh = 12
	}
	w.viewport.Width = vw
	w.viewport.Height = vh
}

// Init implements View.
func (w *OutputWindow) Init() tea.Cmd {
	return w.viewport.Init()
}

// Update implements View.
func (w *OutputWindow) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			if w.Running {
				return w, nil
			}
			return w, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		w.resize(msg.Width, msg.Height)
		w.refreshContent()
		return w, nil
	}

	var cmd tea.Cmd
	w.viewport, cmd = w.viewport.Update(msg)
	return w, cmd
}

// View implements View.
func (w *OutputWindow) View() string {
	name := filepath.Base(w.Entry.Path)
	var header string
	switch {
	case w.Running:
		header = Styles.Title.Render("Running "+name) + Styles.Hint.Render("  waiting for exit")
	case w.Err != nil:
		header = Styles.TitleWarning.Render(name+" failed") + Styles.Hint.Render("  Esc: close")
	default:
		header = Styles.Title.Render(fmt.Sprintf("%s finished in %s", name, w.Elapsed.Round(time.Millisecond))) +
			Styles.Hint.Render("  Esc: close")
	}
	return header + "\n" + w.viewport.View()
}

// refreshContent rebuilds the viewport content from accumulated lines.
func (w *OutputWindow) refreshContent() {
	content := strings.Join(w.Lines, "\n")
	if content == "" && w.Running {
		content = "Waiting for output..."
	}
	if !w.Running && w.Err != nil {
		if content != "" {
			content += "\n\n"
		}
		content += Styles.StatusError.Render("✗ " + w.Err.Error())
	}
	w.viewport.SetContent(content)
	w.viewport.GotoBottom()
}
