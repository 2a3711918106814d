package http

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets(t *testing.T) {
	for _, name := range []string{"styles.css", "app.js", "manifest.json"} {
		data, err := fs.ReadFile(Assets(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestNewTemplateRenderer(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	assert.NotNil(t, r.templates.Lookup("index.html"))
}

func TestAppScriptSubmitsWhileTyping(t *testing.T) {
	script, err := fs.ReadFile(Assets(), "app.js")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(script), "addEventListener('input'"), "search re-renders on input")
	assert.True(t, strings.Contains(string(script), "addEventListener('change'"))
}
