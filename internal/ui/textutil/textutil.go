// Package textutil provides unicode-aware text helpers for tile labels.
package textutil

import (
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is appended when a label does not fit.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in an ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// Center truncates s to width and pads both sides so it sits in the middle.
// Odd leftover space goes to the right.
func Center(s string, width int) string {
	s = Truncate(s, width)
	gap := width - VisualWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return runewidth.FillLeft("", left) + s + runewidth.FillRight("", gap-left)
}
