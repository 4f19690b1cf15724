package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMarkdownStyle(t *testing.T) {
	assert.Equal(t, MarkdownDark, ResolveMarkdownStyle("dark"))
	assert.Equal(t, MarkdownLight, ResolveMarkdownStyle(" Light "))
}

func TestMarkdownRenderer_RenderAndRewrap(t *testing.T) {
	m := NewMarkdownRenderer(MarkdownDark)
	out, err := m.Render("## Usage\n\nRun `demo.py`.\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage")
	assert.Contains(t, out, "demo.py")

	m.SetWordWrap(40)
	assert.Nil(t, m.renderer, "changing the width drops the cached renderer")
	_, err = m.Render("text")
	require.NoError(t, err)
	assert.NotNil(t, m.renderer)

	m.SetWordWrap(5)
	assert.Equal(t, 20, m.wrap)
}
