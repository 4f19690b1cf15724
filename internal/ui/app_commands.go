package ui

import (
	"fmt"
	"os"
	"time"

	"demolauncher/internal/browse"

	tea "github.com/charmbracelet/bubbletea"
)

// loadEntriesCmd lists dir off the update loop.
func loadEntriesCmd(root, dir string, showHidden bool) tea.Cmd {
	return func() tea.Msg {
		es, err := browse.ListEntries(root, dir, showHidden)
		return entriesLoadedMsg{Dir: dir, Entries: es, Err: err}
	}
}

// waitForChangeCmd blocks until the watcher reports a change. It must be
// re-issued after every message it produces.
func waitForChangeCmd(w *browse.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		dir, err := w.Next()
		if err != nil {
			return watchErrMsg{Err: err}
		}
		return dirChangedMsg{Dir: dir}
	}
}

// flashCmd keeps the launch highlight on for d before the process starts.
func flashCmd(id string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashDoneMsg{ID: id}
	})
}

// readDocumentCmd reads e and renders it unless it is plain text.
func readDocumentCmd(e browse.Entry, md *MarkdownRenderer) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return documentLoadedMsg{Entry: e, Err: fmt.Errorf("read document: %w", err)}
		}
		content := string(data)
		if e.IsPlainText() || md == nil {
			return documentLoadedMsg{Entry: e, Content: content, Raw: true}
		}
		out, err := md.Render(content)
		if err != nil {
			return documentLoadedMsg{Entry: e, Err: fmt.Errorf("render document: %w", err)}
		}
		return documentLoadedMsg{Entry: e, Content: out}
	}
}

// copyPathCmd writes path to the system clipboard.
func copyPathCmd(write func(string) error, path string) tea.Cmd {
	return func() tea.Msg {
		if write == nil {
			return clipboardMsg{Path: path, Err: fmt.Errorf("clipboard unavailable")}
		}
		return clipboardMsg{Path: path, Err: write(path)}
	}
}
