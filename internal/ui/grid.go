package ui

import (
	"strings"

	"demolauncher/internal/browse"
	"demolauncher/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const (
	defaultTileWidth = 18
	tileGap          = 1 // columns between tiles
)

// GridView lays out entries as fixed-size tiles and tracks the keyboard selection.
type GridView struct {
	entries  []browse.Entry // full listing of the cursor directory
	visible  []browse.Entry // entries after the filter
	Selected int
	Flashing string // path of the tile being launched, "" when none

	query     string
	tileWidth int
	width     int
	height    int
	offset    int // first visible row
	keys      KeyMap
}

// Ensure GridView implements View.
var _ View = (*GridView)(nil)

// NewGridView creates an empty grid. tileWidth is the inner width of a tile.
func NewGridView(tileWidth int, keys KeyMap) *GridView {
	if tileWidth <= 0 {
		tileWidth = defaultTileWidth
	}
	return &GridView{tileWidth: tileWidth, keys: keys, width: 80, height: 20}
}

// SetEntries replaces the listing. The selection is kept on the same path
// when it still exists, otherwise clamped.
func (g *GridView) SetEntries(es []browse.Entry) {
	prev := ""
	if e, ok := g.SelectedEntry(); ok {
		prev = e.Path
	}
	g.entries = es
	g.applyFilter()
	g.selectPath(prev)
}

// Reset clears the filter and puts the selection on the first tile.
func (g *GridView) Reset() {
	g.query = ""
	g.Selected = 0
	g.offset = 0
}

// Entries returns the tiles currently shown.
func (g *GridView) Entries() []browse.Entry {
	return g.visible
}

// SelectedEntry returns the entry under the selection.
func (g *GridView) SelectedEntry() (browse.Entry, bool) {
	if g.Selected < 0 || g.Selected >= len(g.visible) {
		return browse.Entry{}, false
	}
	return g.visible[g.Selected], true
}

// Filter returns the active fuzzy filter query.
func (g *GridView) Filter() string {
	return g.query
}

// SetFilter narrows the visible tiles to fuzzy matches of query.
// The go-up tile is always kept.
func (g *GridView) SetFilter(query string) {
	g.query = query
	g.applyFilter()
	g.Selected = 0
	g.offset = 0
}

func (g *GridView) applyFilter() {
	if g.query == "" {
		g.visible = g.entries
		g.clamp()
		return
	}
	var up []browse.Entry
	var rest []browse.Entry
	for _, e := range g.entries {
		if e.Up {
			up = append(up, e)
			continue
		}
		rest = append(rest, e)
	}
	names := make([]string, len(rest))
	for i, e := range rest {
		names[i] = e.Name
	}
	out := up
	for _, m := range fuzzy.Find(g.query, names) {
		out = append(out, rest[m.Index])
	}
	g.visible = out
	g.clamp()
}

func (g *GridView) selectPath(path string) {
	if path == "" {
		g.clamp()
		return
	}
	for i, e := range g.visible {
		if e.Path == path {
			g.Selected = i
			g.scrollToSelected()
			return
		}
	}
	g.clamp()
}

func (g *GridView) clamp() {
	if g.Selected >= len(g.visible) {
		g.Selected = len(g.visible) - 1
	}
	if g.Selected < 0 {
		g.Selected = 0
	}
	g.scrollToSelected()
}

// SetSize sets the area available to the grid.
func (g *GridView) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.scrollToSelected()
}

// Columns returns how many tiles fit per row.
func (g *GridView) Columns() int {
	w, _ := g.cellSize()
	cols := (g.width + tileGap) / (w + tileGap)
	if cols < 1 {
		return 1
	}
	return cols
}

func (g *GridView) visibleRows() int {
	_, h := g.cellSize()
	rows := g.height / h
	if rows < 1 {
		return 1
	}
	return rows
}

// cellSize returns the outer size of one rendered tile.
func (g *GridView) cellSize() (int, int) {
	t := g.renderTile(browse.Entry{Name: "x"}, false, false)
	return lipgloss.Width(t), lipgloss.Height(t)
}

func (g *GridView) scrollToSelected() {
	cols := g.Columns()
	row := g.Selected / cols
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// Move shifts the selection by dx columns and dy rows, stopping at the edges.
func (g *GridView) Move(dx, dy int) {
	if len(g.visible) == 0 {
		return
	}
	cols := g.Columns()
	next := g.Selected + dx + dy*cols
	if dx != 0 && (next < 0 || next >= len(g.visible)) {
		return
	}
	if next < 0 {
		next = g.Selected % cols
	}
	if next >= len(g.visible) {
		if dy > 0 && g.Selected/cols < (len(g.visible)-1)/cols {
			next = len(g.visible) - 1 // partial last row
		} else {
			return
		}
	}
	g.Selected = next
	g.scrollToSelected()
}

// HitTest returns the index of the tile at grid-relative cell (x, y), or -1.
func (g *GridView) HitTest(x, y int) int {
	if x < 0 || y < 0 {
		return -1
	}
	w, h := g.cellSize()
	col := x / (w + tileGap)
	if x%(w+tileGap) >= w || col >= g.Columns() {
		return -1
	}
	row := y/h + g.offset
	idx := row*g.Columns() + col
	if idx >= len(g.visible) {
		return -1
	}
	return idx
}

// Init implements View.
func (g *GridView) Init() tea.Cmd {
	return nil
}

// Update implements View. Only selection movement is handled here; activation
// belongs to the app model because it is gated by the launch lock.
func (g *GridView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, g.keys.Up):
			g.Move(0, -1)
		case key.Matches(msg, g.keys.Down):
			g.Move(0, 1)
		case key.Matches(msg, g.keys.Left):
			g.Move(-1, 0)
		case key.Matches(msg, g.keys.Right):
			g.Move(1, 0)
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				g.Move(0, -1)
			case tea.MouseButtonWheelDown:
				g.Move(0, 1)
			}
		}
	}
	return g, nil
}

// View implements View.
func (g *GridView) View() string {
	if len(g.visible) == 0 {
		if g.query != "" {
			return Styles.Empty.Render("No entries match " + g.query)
		}
		return Styles.Empty.Render("Empty folder")
	}
	cols := g.Columns()
	rows := g.visibleRows()
	var lines []string
	for r := g.offset; r < g.offset+rows; r++ {
		start := r * cols
		if start >= len(g.visible) {
			break
		}
		end := min(start+cols, len(g.visible))
		tiles := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				tiles = append(tiles, strings.Repeat(" ", tileGap))
			}
			e := g.visible[i]
			tiles = append(tiles, g.renderTile(e, i == g.Selected, g.Flashing != "" && e.Path == g.Flashing && !e.Up))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (g *GridView) renderTile(e browse.Entry, selected, flashing bool) string {
	style := Styles.Tile
	switch {
	case flashing:
		style = Styles.TileFlash
	case selected:
		style = Styles.TileSelected
	}
	labelStyle := Styles.FileLabel
	if e.IsDir() {
		labelStyle = Styles.FolderLabel
	}
	tag := tileTag(e)
	body := Styles.KindTag.Render(textutil.Center(tag, g.tileWidth)) + "\n" +
		labelStyle.Render(textutil.Center(e.Label(), g.tileWidth))
	return style.Render(body)
}

func tileTag(e browse.Entry) string {
	if e.Up {
		return "↑ up"
	}
	switch e.Kind {
	case browse.KindDir:
		return "folder"
	case browse.KindScript:
		return "▶ script"
	case browse.KindNotebook:
		return "▶ notebook"
	case browse.KindDocument:
		return "doc"
	default:
		return "file"
	}
}
