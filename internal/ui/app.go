package ui

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"demolauncher/internal/browse"
	"demolauncher/internal/launch"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// DefaultFlash is how long a tile stays highlighted before its process starts.
const DefaultFlash = 2 * time.Second

// gridTop is the number of rows above the grid: the title and the filter line.
const gridTop = 2

// Options configures NewAppModel.
type Options struct {
	Cursor    *browse.Cursor
	Launcher  *launch.Launcher
	Watcher   *browse.Watcher // optional
	Markdown  *MarkdownRenderer
	Flash     time.Duration
	TileWidth int
}

// AppModel is the root model: one cursor, one tile grid and the launch lock.
type AppModel struct {
	Cursor   *browse.Cursor
	Grid     *GridView
	Overlays OverlayStack
	Launcher *launch.Launcher
	Watcher  *browse.Watcher
	Markdown *MarkdownRenderer
	Flash    time.Duration

	// Locked is held from a launch click until the child exited.
	Locked   bool
	LaunchID string
	pending  browse.Entry

	Status        string
	StatusIsError bool

	Filtering bool
	filter    textinput.Model
	keys      KeyMap
	help      help.Model
	width     int
	height    int

	NewID     func() string
	Clipboard func(string) error
	Ctx       context.Context
}

// NewAppModel creates the root application model positioned at the cursor.
func NewAppModel(opts Options) *AppModel {
	flash := opts.Flash
	if flash <= 0 {
		flash = DefaultFlash
	}
	keys := DefaultKeyMap()
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter"
	return &AppModel{
		Cursor:    opts.Cursor,
		Grid:      NewGridView(opts.TileWidth, keys),
		Launcher:  opts.Launcher,
		Watcher:   opts.Watcher,
		Markdown:  opts.Markdown,
		Flash:     flash,
		filter:    fi,
		keys:      keys,
		help:      newHelpModel(),
		width:     80,
		height:    24,
		NewID:     uuid.NewString,
		Clipboard: clipboard.WriteAll,
		Ctx:       context.Background(),
	}
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	a.watchCurrent()
	return tea.Batch(a.reload(), waitForChangeCmd(a.Watcher))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)
	case entriesLoadedMsg:
		return a.handleEntriesLoaded(msg)
	case dirChangedMsg:
		return a, tea.Batch(a.reload(), waitForChangeCmd(a.Watcher))
	case watchErrMsg:
		if errors.Is(msg.Err, browse.ErrWatcherClosed) {
			return a, nil
		}
		log.Printf("ui: %v", msg.Err)
		return a, waitForChangeCmd(a.Watcher)
	case flashDoneMsg:
		return a.handleFlashDone(msg)
	case launch.Started:
		return a.handleLaunchStarted(msg)
	case launch.Output:
		return a.handleLaunchOutput(msg)
	case launch.Finished:
		return a.handleLaunchFinished(msg)
	case documentLoadedMsg:
		return a.handleDocumentLoaded(msg)
	case clipboardMsg:
		if msg.Err != nil {
			a.setError("copy failed: " + msg.Err.Error())
		} else {
			a.setStatus("Copied " + msg.Path)
		}
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		return a.handleKey(msg)
	case tea.MouseMsg:
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		return a.handleMouse(msg)
	}
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}
	return a, nil
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.Filtering {
		return a.handleFilterKey(msg)
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Select):
		if e, ok := a.Grid.SelectedEntry(); ok {
			return a, a.selectEntry(e)
		}
		return a, nil
	case key.Matches(msg, a.keys.Parent):
		if a.Cursor.AtRoot() {
			return a, nil
		}
		es := a.Grid.Entries()
		if len(es) > 0 && es[0].Up {
			return a, a.selectEntry(es[0])
		}
		return a, nil
	case key.Matches(msg, a.keys.Filter):
		a.Filtering = true
		a.filter.SetValue(a.Grid.Filter())
		return a, a.filter.Focus()
	case msg.String() == "esc":
		if a.Grid.Filter() != "" {
			a.Grid.SetFilter("")
		}
		return a, nil
	case key.Matches(msg, a.keys.Copy):
		if e, ok := a.Grid.SelectedEntry(); ok {
			return a, copyPathCmd(a.Clipboard, e.Path)
		}
		return a, nil
	case key.Matches(msg, a.keys.Reload):
		return a, a.reload()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.layout()
		return a, nil
	}
	_, cmd := a.Grid.Update(msg)
	return a, cmd
}

func (a *appModelAdapter) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.Filtering = false
		a.filter.Blur()
		a.filter.SetValue("")
		a.Grid.SetFilter("")
		return a, nil
	case "enter":
		a.Filtering = false
		a.filter.Blur()
		return a, nil
	case "up", "down":
		_, cmd := a.Grid.Update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	if v := a.filter.Value(); v != a.Grid.Filter() {
		a.Grid.SetFilter(v)
	}
	return a, cmd
}

func (a *appModelAdapter) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return a, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		_, cmd := a.Grid.Update(msg)
		return a, cmd
	}
	idx := a.Grid.HitTest(msg.X, msg.Y-gridTop)
	if idx < 0 {
		return a, nil
	}
	if a.Locked {
		return a, nil
	}
	a.Grid.Selected = idx
	return a, a.selectEntry(a.Grid.Entries()[idx])
}

func (a *appModelAdapter) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	a.layout()
	if a.Markdown != nil {
		w, _ := documentSize(msg.Width, msg.Height)
		a.Markdown.SetWordWrap(w - 2)
	}
	return a, a.Overlays.UpdateAll(msg)
}

// layout sizes the grid to the space between the header and the footer.
func (a *appModelAdapter) layout() {
	a.help.Width = a.width
	a.filter.Width = max(a.width-4, 10)
	footer := lipgloss.Height(a.footerView())
	a.Grid.SetSize(a.width, a.height-gridTop-footer)
}

// reload lists the cursor directory.
func (a *AppModel) reload() tea.Cmd {
	return loadEntriesCmd(a.Cursor.Root(), a.Cursor.Path(), a.Cursor.ShowHidden)
}

// watchCurrent points the watcher at the cursor directory.
func (a *AppModel) watchCurrent() {
	if a.Watcher == nil {
		return
	}
	if err := a.Watcher.Watch(a.Cursor.Path()); err != nil {
		log.Printf("ui: %v", err)
	}
}

func (a *appModelAdapter) handleEntriesLoaded(msg entriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Dir != a.Cursor.Path() {
		return a, nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, os.ErrNotExist) && a.Cursor.Recover() {
			a.Grid.Reset()
			a.watchCurrent()
			a.setStatus("Folder was removed; moved to " + a.Cursor.Rel())
			return a, a.reload()
		}
		log.Printf("ui: %v", msg.Err)
		a.setError(msg.Err.Error())
		a.Grid.SetEntries(nil)
		return a, nil
	}
	a.Grid.SetEntries(msg.Entries)
	return a, nil
}

func (a *AppModel) setStatus(s string) {
	a.Status = s
	a.StatusIsError = false
}

func (a *AppModel) setError(s string) {
	a.Status = s
	a.StatusIsError = true
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	title := Styles.Title.Render("Dir: " + a.Cursor.Rel())
	if a.Locked {
		title += Styles.Muted.Render("  (busy)")
	}
	filterLine := ""
	switch {
	case a.Filtering:
		filterLine = a.filter.View()
	case a.Grid.Filter() != "":
		filterLine = Styles.Hint.Render("filter: " + a.Grid.Filter() + "  (esc clears)")
	}
	grid := lipgloss.NewStyle().Height(max(a.height-gridTop-lipgloss.Height(a.footerView()), 0)).Render(a.Grid.View())
	base := strings.Join([]string{title, filterLine, grid, a.footerView()}, "\n")

	top, ok := a.Overlays.Peek()
	if !ok {
		return base
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, top.View.View())
}

func (a *appModelAdapter) footerView() string {
	status := Styles.Status.Render(a.Status)
	if a.StatusIsError {
		status = Styles.StatusError.Render(a.Status)
	}
	return status + "\n" + a.help.View(a.keys)
}
