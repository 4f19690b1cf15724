package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Cursor is the directory currently being browsed, bounded below by Root.
type Cursor struct {
	root       string
	cwd        string
	ShowHidden bool
}

// NewCursor returns a cursor positioned at root. Root must be an existing directory.
func NewCursor(root string) (*Cursor, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q: %w", abs, ErrNotDirectory)
	}
	return &Cursor{root: abs, cwd: abs}, nil
}

// Root returns the absolute root path.
func (c *Cursor) Root() string { return c.root }

// Path returns the absolute path of the current directory.
func (c *Cursor) Path() string { return c.cwd }

// AtRoot reports whether the cursor is at the root.
func (c *Cursor) AtRoot() bool { return c.cwd == c.root }

// Rel returns the current path for display, rooted at the root's base name.
func (c *Cursor) Rel() string {
	rel, err := filepath.Rel(c.root, c.cwd)
	if err != nil || rel == "." {
		return filepath.Base(c.root)
	}
	return filepath.Join(filepath.Base(c.root), rel)
}

// Contains reports whether path is the root or below it.
func (c *Cursor) Contains(path string) bool {
	rel, err := filepath.Rel(c.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Enter moves the cursor to path. The cursor is unchanged on error.
func (c *Cursor) Enter(path string) error {
	path = filepath.Clean(path)
	if !c.Contains(path) {
		return fmt.Errorf("enter %q: %w", path, ErrOutsideRoot)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("enter %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("enter %q: %w", path, ErrNotDirectory)
	}
	c.cwd = path
	return nil
}

// Up moves to the parent directory. Returns false at the root.
func (c *Cursor) Up() bool {
	if c.AtRoot() {
		return false
	}
	c.cwd = filepath.Dir(c.cwd)
	return true
}

// Recover moves the cursor to the nearest existing ancestor within the root.
// Used when the current directory was removed underneath us.
func (c *Cursor) Recover() bool {
	moved := false
	for !c.AtRoot() {
		if info, err := os.Stat(c.cwd); err == nil && info.IsDir() {
			return moved
		}
		c.cwd = filepath.Dir(c.cwd)
		moved = true
	}
	return moved
}

// List returns the entries of the current directory.
func (c *Cursor) List() ([]Entry, error) {
	return ListEntries(c.root, c.cwd, c.ShowHidden)
}

// ListEntries lists dir's contents. When dir is not root a synthetic go-up entry
// pointing at the parent comes first. Directories precede files; each group is
// sorted by name, case-insensitively.
func ListEntries(root, dir string, showHidden bool) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}

	var dirs, files []Entry
	for _, de := range des {
		name := de.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if isDir(full, de) {
			dirs = append(dirs, Entry{Name: name, Path: full, Kind: KindDir})
			continue
		}
		files = append(files, Entry{Name: name, Path: full, Kind: Classify(name)})
	}
	sortByName(dirs)
	sortByName(files)

	out := make([]Entry, 0, len(dirs)+len(files)+1)
	if filepath.Clean(dir) != filepath.Clean(root) {
		out = append(out, Entry{Name: "..", Path: filepath.Dir(dir), Kind: KindDir, Up: true})
	}
	out = append(out, dirs...)
	return append(out, files...), nil
}

// isDir follows symlinks so a linked demo folder is browsable.
func isDir(full string, de os.DirEntry) bool {
	if de.IsDir() {
		return true
	}
	if de.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}

func sortByName(es []Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		a, b := strings.ToLower(es[i].Name), strings.ToLower(es[j].Name)
		if a == b {
			return es[i].Name < es[j].Name
		}
		return a < b
	})
}
