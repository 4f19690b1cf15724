package ui

import (
	"fmt"
	"path/filepath"

	"demolauncher/internal/browse"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DocumentModal shows a document's content in a scrollable box.
// Esc, q or Enter close it; the content is discarded on close.
type DocumentModal struct {
	Entry   browse.Entry
	Content string // as displayed: raw for .txt, rendered otherwise
	Raw     bool

	viewport viewport.Model
}

// Ensure DocumentModal implements View.
var _ View = (*DocumentModal)(nil)

const (
	defaultDocumentWidth  = 80
	defaultDocumentHeight = 20
)

// NewDocumentModal creates a modal displaying content for e.
func NewDocumentModal(e browse.Entry, content string, raw bool, width, height int) *DocumentModal {
	m := &DocumentModal{
		Entry:    e,
		Content:  content,
		Raw:      raw,
		viewport: viewport.New(defaultDocumentWidth, defaultDocumentHeight),
	}
	m.resize(width, height)
	m.viewport.SetContent(content)
	return m
}

// documentSize returns the viewport size for a terminal of width x height.
func documentSize(width, height int) (int, int) {
	w := width - 8
	h := height - 8
	if w < 40 {
		w = 40
	}
	if h < 6 {
		h = 6
	}
	return w, h
}

func (m *DocumentModal) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.viewport.Width, m.viewport.Height = documentSize(width, height)
}

// Init implements View.
func (m *DocumentModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *DocumentModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return m, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements View.
func (m *DocumentModal) View() string {
	title := Styles.Title.Render(filepath.Base(m.Entry.Path))
	hint := Styles.Hint.Render("  ↑/↓ scroll  Esc: close")
	body := m.viewport.View()
	footer := Styles.Muted.Render(scrollPercent(m.viewport))
	return Styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, title+hint, "", body, footer))
}

func scrollPercent(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	return fmt.Sprintf("%3.0f%%", vp.ScrollPercent()*100)
}
