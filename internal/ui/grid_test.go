package ui

import (
	"fmt"
	"testing"

	"demolauncher/internal/browse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileEntries(n int) []browse.Entry {
	es := make([]browse.Entry, n)
	for i := range es {
		name := fmt.Sprintf("demo%02d.py", i)
		es[i] = browse.Entry{Name: name, Path: "/demos/" + name, Kind: browse.KindScript}
	}
	return es
}

func newTestGrid(n, width, height int) *GridView {
	g := NewGridView(18, DefaultKeyMap())
	g.SetSize(width, height)
	g.SetEntries(fileEntries(n))
	return g
}

func TestGrid_ColumnsFromTileWidth(t *testing.T) {
	g := newTestGrid(10, 100, 40)
	w, h := g.cellSize()
	assert.Equal(t, 20, w, "18 columns of content plus the border")
	assert.Equal(t, 4, h)
	assert.Equal(t, 4, g.Columns())

	g.SetSize(5, 40)
	assert.Equal(t, 1, g.Columns(), "never fewer than one column")
}

func TestGrid_MoveStopsAtEdges(t *testing.T) {
	g := newTestGrid(10, 100, 40) // rows of 4, 4, 2

	g.Move(-1, 0)
	assert.Equal(t, 0, g.Selected)
	g.Move(0, -1)
	assert.Equal(t, 0, g.Selected)

	g.Move(1, 0)
	g.Move(0, 1)
	assert.Equal(t, 5, g.Selected)

	g.Selected = 7
	g.Move(0, 1)
	assert.Equal(t, 9, g.Selected, "down into a partial row lands on its last tile")
	g.Move(0, 1)
	assert.Equal(t, 9, g.Selected)
	g.Move(1, 0)
	assert.Equal(t, 9, g.Selected)
}

func TestGrid_HitTest(t *testing.T) {
	g := newTestGrid(6, 100, 40)

	assert.Equal(t, 0, g.HitTest(0, 0))
	assert.Equal(t, 1, g.HitTest(21, 1))
	assert.Equal(t, -1, g.HitTest(20, 1), "gap between tiles")
	assert.Equal(t, 4, g.HitTest(3, 5))
	assert.Equal(t, -1, g.HitTest(70, 5), "no tile in that cell")
	assert.Equal(t, -1, g.HitTest(-1, 0))
}

func TestGrid_ScrollKeepsSelectionVisible(t *testing.T) {
	g := newTestGrid(40, 100, 8) // two rows visible
	g.Selected = 13
	g.scrollToSelected()
	assert.Equal(t, 2, g.offset)
	assert.Equal(t, 13, g.HitTest(21, 4), "hit test accounts for the scroll offset")
}

func TestGrid_SetEntriesKeepsSelectedPath(t *testing.T) {
	g := newTestGrid(5, 100, 40)
	g.Selected = 3
	want := g.visible[3].Path

	g.SetEntries(fileEntries(5)[1:])
	e, ok := g.SelectedEntry()
	require.True(t, ok)
	assert.Equal(t, want, e.Path)

	g.SetEntries(nil)
	_, ok = g.SelectedEntry()
	assert.False(t, ok)
	assert.Contains(t, g.View(), "Empty folder")
}

func TestGrid_FilterKeepsGoUp(t *testing.T) {
	g := NewGridView(18, DefaultKeyMap())
	g.SetEntries(append([]browse.Entry{{Name: "..", Path: "/", Kind: browse.KindDir, Up: true}}, fileEntries(12)...))

	g.SetFilter("demo07")
	require.Len(t, g.Entries(), 2)
	assert.True(t, g.Entries()[0].Up)
	assert.Equal(t, "demo07.py", g.Entries()[1].Name)

	g.SetFilter("zzz")
	assert.Len(t, g.Entries(), 1)

	g.SetFilter("")
	assert.Len(t, g.Entries(), 13)
}

func TestGrid_ViewTruncatesLongLabels(t *testing.T) {
	g := NewGridView(10, DefaultKeyMap())
	g.SetEntries([]browse.Entry{{Name: "a_very_long_demo_name.py", Path: "/d/a.py", Kind: browse.KindScript}})
	out := g.View()
	assert.Contains(t, out, "a_very_lo…")
	assert.NotContains(t, out, "a_very_long_demo_name.py")
}

func TestTileTag(t *testing.T) {
	assert.Equal(t, "↑ up", tileTag(browse.Entry{Up: true, Kind: browse.KindDir}))
	assert.Equal(t, "folder", tileTag(browse.Entry{Kind: browse.KindDir}))
	assert.Equal(t, "▶ script", tileTag(browse.Entry{Kind: browse.KindScript}))
	assert.Equal(t, "▶ notebook", tileTag(browse.Entry{Kind: browse.KindNotebook}))
	assert.Equal(t, "doc", tileTag(browse.Entry{Kind: browse.KindDocument}))
	assert.Equal(t, "file", tileTag(browse.Entry{}))
}
