// Package browse lists a demos tree as launcher entries and tracks the
// directory cursor, which can never move above the configured root.
package browse

import (
	"errors"
	"path/filepath"
	"strings"
)

// Kind classifies an entry by extension or directory check.
type Kind int

const (
	KindOther Kind = iota
	KindDir
	KindScript
	KindNotebook
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindScript:
		return "script"
	case KindNotebook:
		return "notebook"
	case KindDocument:
		return "document"
	default:
		return "other"
	}
}

// Launchable reports whether selecting an entry of this kind spawns a process.
func (k Kind) Launchable() bool {
	return k == KindScript || k == KindNotebook
}

var (
	// ErrOutsideRoot is returned when a path is not within the browse root.
	ErrOutsideRoot = errors.New("path is outside the demos root")
	// ErrNotDirectory is returned when the cursor is pointed at a file.
	ErrNotDirectory = errors.New("not a directory")
)

// Entry is one filesystem item shown as a tile.
type Entry struct {
	Name string
	Path string // absolute
	Kind Kind
	Up   bool // synthetic "go up" entry pointing at the parent
}

// IsDir reports whether selecting the entry navigates.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// IsPlainText reports whether a document should be shown raw rather than rendered.
func (e Entry) IsPlainText() bool {
	return e.Kind == KindDocument && strings.EqualFold(filepath.Ext(e.Path), ".txt")
}

// Label is the tile caption.
func (e Entry) Label() string {
	if e.Up {
		return ".."
	}
	return e.Name
}

// Classify returns the kind of a file name. Directories are classified by the caller.
func Classify(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".py":
		return KindScript
	case ".ipynb":
		return KindNotebook
	case ".md", ".rst", ".txt":
		return KindDocument
	default:
		return KindOther
	}
}
