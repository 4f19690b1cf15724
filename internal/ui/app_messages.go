package ui

import (
	"demolauncher/internal/browse"
)

// entriesLoadedMsg carries a directory listing. Dir is the directory that was
// listed; listings for a directory the cursor has left are dropped.
type entriesLoadedMsg struct {
	Dir     string
	Entries []browse.Entry
	Err     error
}

// flashDoneMsg ends the highlight delay of launch ID and starts the process.
type flashDoneMsg struct {
	ID string
}

// documentLoadedMsg carries a document read for the modal.
type documentLoadedMsg struct {
	Entry   browse.Entry
	Content string
	Raw     bool
	Err     error
}

// dirChangedMsg is sent when the watched directory's entries changed.
type dirChangedMsg struct {
	Dir string
}

// watchErrMsg is sent when the watcher reports an error or was closed.
type watchErrMsg struct {
	Err error
}

// clipboardMsg reports the result of copying a path.
type clipboardMsg struct {
	Path string
	Err  error
}

// DismissModalMsg is sent when the user closes the top overlay.
type DismissModalMsg struct{}
