package artifact

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedResponse(t *testing.T) string {
	t.Helper()
	files := map[string]string{
		"index.html": "<!DOCTYPE html><html><body><canvas id=\"gameCanvas\"></canvas></body></html>",
		"style.css":  "body { background: #222; }",
		"game.js":    "const canvas = document.getElementById('gameCanvas');",
	}
	data, err := json.Marshal(files)
	require.NoError(t, err)
	return string(data)
}

func TestParse(t *testing.T) {
	fs, err := Parse(wellFormedResponse(t))
	require.NoError(t, err)
	assert.Contains(t, fs.Markup, "<canvas")
	assert.Contains(t, fs.Style, "background")
	assert.Contains(t, fs.Script, "gameCanvas")
}

func TestParseFenced(t *testing.T) {
	fs, err := Parse("```json\n" + wellFormedResponse(t) + "\n```")
	require.NoError(t, err)
	assert.NoError(t, fs.Validate())
}

func TestParseMissingArtifact(t *testing.T) {
	files := map[string]string{
		"index.html": "<html></html>",
		"game.js":    "let x = 1;",
	}
	data, err := json.Marshal(files)
	require.NoError(t, err)

	fs, err := Parse(string(data))
	assert.Nil(t, fs)
	assert.ErrorIs(t, err, ErrMissingArtifact)
}

func TestParseNotJSON(t *testing.T) {
	fs, err := Parse("Sorry, I can't produce that.")
	assert.Nil(t, fs)
	assert.ErrorIs(t, err, ErrMissingArtifact)
}

func TestValidate(t *testing.T) {
	fs := &FileSet{Markup: "<html></html>", Style: "body{}", Script: "init();"}
	assert.NoError(t, fs.Validate())

	fs.Style = "   "
	err := fs.Validate()
	assert.ErrorIs(t, err, ErrMissingArtifact)
	assert.Contains(t, err.Error(), "style.css")
}

func TestRoleFilenames(t *testing.T) {
	assert.Equal(t, "index.html", RoleMarkup.Filename())
	assert.Equal(t, "style.css", RoleStyle.Filename())
	assert.Equal(t, "game.js", RoleScript.Filename())
}
