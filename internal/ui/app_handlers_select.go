package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"demolauncher/internal/browse"
	"demolauncher/internal/launch"

	tea "github.com/charmbracelet/bubbletea"
)

// selectEntry activates e. While a launch holds the lock every selection is
// dropped without queuing.
func (a *appModelAdapter) selectEntry(e browse.Entry) tea.Cmd {
	if a.Locked {
		return nil
	}
	switch {
	case e.IsDir():
		return a.navigate(e)
	case e.Kind.Launchable():
		return a.beginLaunch(e)
	case e.Kind == browse.KindDocument:
		a.setStatus("Opening " + e.Name)
		return readDocumentCmd(e, a.Markdown)
	default:
		a.setStatus(fmt.Sprintf("%s: %s", e.Name, browse.Describe(e)))
		return nil
	}
}

// navigate moves the cursor into a directory entry (or up, for the go-up tile).
func (a *appModelAdapter) navigate(e browse.Entry) tea.Cmd {
	if err := a.Cursor.Enter(e.Path); err != nil {
		log.Printf("ui: %v", err)
		a.setError(err.Error())
		return nil
	}
	a.Grid.Reset()
	a.Grid.SetEntries(nil)
	a.Filtering = false
	a.filter.SetValue("")
	a.setStatus("")
	a.watchCurrent()
	return a.reload()
}

// beginLaunch takes the lock and highlights the tile; the process starts when
// the flash ends.
func (a *appModelAdapter) beginLaunch(e browse.Entry) tea.Cmd {
	a.Locked = true
	a.LaunchID = a.NewID()
	a.pending = e
	a.Grid.Flashing = e.Path
	a.setStatus("Launching " + e.Name + "...")
	return flashCmd(a.LaunchID, a.Flash)
}

func (a *appModelAdapter) handleFlashDone(msg flashDoneMsg) (tea.Model, tea.Cmd) {
	if !a.Locked || msg.ID != a.LaunchID {
		return a, nil
	}
	if a.Launcher == nil {
		return a, func() tea.Msg {
			return launch.Finished{ID: msg.ID, Entry: a.pending, Err: fmt.Errorf("no launcher configured")}
		}
	}
	a.setStatus("Running " + a.pending.Name)
	return a, a.Launcher.Launch(a.Ctx, msg.ID, a.pending)
}

func (a *appModelAdapter) handleLaunchStarted(msg launch.Started) (tea.Model, tea.Cmd) {
	if msg.ID == a.LaunchID {
		a.Overlays.Push(Overlay{View: NewOutputWindow(msg.ID, a.pending, a.width, a.height)})
	}
	return a, msg.Stream.Next()
}

func (a *appModelAdapter) handleLaunchOutput(msg launch.Output) (tea.Model, tea.Cmd) {
	if w, ok := a.outputWindow(msg.ID); ok {
		w.Append(msg.Line)
	}
	return a, msg.Stream.Next()
}

func (a *appModelAdapter) outputWindow(id string) (*OutputWindow, bool) {
	v, ok := a.Overlays.Find(func(v View) bool {
		w, ok := v.(*OutputWindow)
		return ok && w.ID == id
	})
	if !ok {
		return nil, false
	}
	return v.(*OutputWindow), true
}

// handleLaunchFinished releases the lock whatever the outcome.
func (a *appModelAdapter) handleLaunchFinished(msg launch.Finished) (tea.Model, tea.Cmd) {
	if w, ok := a.outputWindow(msg.ID); ok {
		w.Finish(msg.Err, msg.Duration)
	}
	if msg.ID != a.LaunchID {
		log.Printf("ui: ignoring finish of stale launch %s", msg.ID)
		return a, nil
	}
	a.Locked = false
	a.Grid.Flashing = ""
	a.pending = browse.Entry{}
	name := filepath.Base(msg.Entry.Path)
	if msg.Err != nil {
		a.setError(msg.Err.Error())
		return a, nil
	}
	a.setStatus(fmt.Sprintf("%s finished in %s", name, msg.Duration.Round(time.Millisecond)))
	return a, nil
}

func (a *appModelAdapter) handleDocumentLoaded(msg documentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("ui: %s: %v", msg.Entry.Path, msg.Err)
		a.setError(msg.Err.Error())
		return a, nil
	}
	a.setStatus("")
	a.Overlays.Push(Overlay{View: NewDocumentModal(msg.Entry, msg.Content, msg.Raw, a.width, a.height)})
	return a, nil
}
