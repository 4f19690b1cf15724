package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for the selected tile, borders
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorFolder    = "220" // Yellow - folder tiles
	ColorFile      = "75"  // Blue - file tiles
	ColorFlash     = "46"  // Green - tile being launched
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title        lipgloss.Style // Bold accent color - for main titles
	TitleWarning lipgloss.Style // Bold danger color - for error titles

	Box       lipgloss.Style // Standard modal box with rounded border
	BoxDanger lipgloss.Style // Error box

	Tile         lipgloss.Style // Unselected tile
	TileSelected lipgloss.Style // Tile under the keyboard cursor
	TileFlash    lipgloss.Style // Tile whose process is being launched
	FolderLabel  lipgloss.Style
	FileLabel    lipgloss.Style
	KindTag      lipgloss.Style

	Muted       lipgloss.Style
	Hint        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Empty       lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
	Tile: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)),
	TileSelected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)),
	TileFlash: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(ColorFlash)),
	FolderLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorFolder)),
	FileLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorFile)),
	KindTag: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	StatusError: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}
