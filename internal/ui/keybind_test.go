package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	k := DefaultKeyMap()
	cases := []struct {
		key  string
		want key.Binding
	}{
		{"enter", k.Select},
		{" ", k.Select}, // Bubble Tea reports space as " "
		{"backspace", k.Parent},
		{"-", k.Parent},
		{"j", k.Down},
		{"l", k.Right},
		{"/", k.Filter},
		{"y", k.Copy},
		{"q", k.Quit},
		{"ctrl+c", k.Quit},
	}
	for _, tc := range cases {
		assert.True(t, key.Matches(keyMsg(tc.key), tc.want), "key %q", tc.key)
	}
	assert.False(t, key.Matches(keyMsg("x"), k.Select))
}

func TestKeyMap_Help(t *testing.T) {
	k := DefaultKeyMap()
	assert.NotEmpty(t, k.ShortHelp())
	h := newHelpModel()
	assert.Contains(t, h.View(k), "quit")
	h.ShowAll = true
	assert.Contains(t, h.View(k), "copy path")
}
