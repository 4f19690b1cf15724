// Package ui is the launcher's Bubble Tea front end.
//
// AppModel owns the directory cursor, the tile grid and the launch lock.
// Documents and PTY output open as overlays; while an overlay is open it
// receives all input.
package ui
