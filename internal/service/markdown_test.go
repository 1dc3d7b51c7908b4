package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	r := NewMarkdownRenderer()

	out, err := r.Render("# Title\n\nSome *emphasis* and ~~strike~~.")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<em>emphasis</em>")
	assert.Contains(t, html, "<del>strike</del>")
}

func TestMarkdownRenderer_DropsRawHTML(t *testing.T) {
	r := NewMarkdownRenderer()

	out, err := r.Render("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "<script>"), "raw html must not pass through: %s", out)
}
