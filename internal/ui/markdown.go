package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Markdown styles accepted by ui.markdown_style besides "auto".
const (
	MarkdownDark  = "dark"
	MarkdownLight = "light"
)

// MarkdownRenderer renders documents with glamour. The underlying renderer is
// rebuilt only when the wrap width changes. Safe for use from commands.
type MarkdownRenderer struct {
	mu       sync.Mutex
	style    string
	wrap     int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer for style. "auto" is resolved against
// the terminal background here, before the program owns the terminal.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: ResolveMarkdownStyle(style), wrap: 80}
}

// ResolveMarkdownStyle maps a configured style to a glamour standard style.
// Anything other than dark or light follows the terminal background.
func ResolveMarkdownStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case MarkdownDark:
		return MarkdownDark
	case MarkdownLight:
		return MarkdownLight
	default:
		if lipgloss.HasDarkBackground() {
			return MarkdownDark
		}
		return MarkdownLight
	}
}

// Style returns the resolved glamour style.
func (m *MarkdownRenderer) Style() string {
	return m.style
}

// SetWordWrap sets the wrap width used by subsequent renders.
func (m *MarkdownRenderer) SetWordWrap(width int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if width < 20 {
		width = 20
	}
	if width != m.wrap {
		m.wrap = width
		m.renderer = nil
	}
}

// Render returns terminal output for content.
func (m *MarkdownRenderer) Render(content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(m.wrap),
		)
		if err != nil {
			return "", err
		}
		m.renderer = r
	}
	return m.renderer.Render(content)
}
