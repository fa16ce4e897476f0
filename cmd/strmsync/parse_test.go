package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	got := parseName("[SubsPlease] Sousou no Frieren - 05v2 (1080p) [A1B2C3D4].mkv")

	assert.Equal(t, "Sousou no Frieren", got.Title)
	assert.Equal(t, "01", got.Season)
	assert.Equal(t, "05", got.Episode)
	assert.Equal(t, "Sousou no Frieren - S01E05", got.StandardName)
	assert.Equal(t, "SubsPlease", got.Group)
	assert.Equal(t, "1080p", got.Resolution)
	assert.Equal(t, 2, got.Version)
}

func TestParseCmd_JSON(t *testing.T) {
	out, err := executeCommand(t, "parse", "--json", "Show.S02E03.1080p.WEB.mkv", "Movie Title.mkv")
	require.NoError(t, err)

	var results []ParseResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "Show - S02E03", results[0].StandardName)
	assert.Equal(t, "Movie Title", results[1].StandardName)
	assert.Empty(t, results[1].Episode)
}

func TestParseCmd_Human(t *testing.T) {
	out, err := executeCommand(t, "parse", "Show - 07.mkv")
	require.NoError(t, err)
	assert.Contains(t, out, "Standard:   Show - S01E07")
}

func TestParseCmd_NoInput(t *testing.T) {
	_, err := executeCommand(t, "parse")
	assert.Error(t, err)
}

func TestReadNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	content := `[Group] Show - 01.mkv
# comment

  Show - 02.mkv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := readNamesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"[Group] Show - 01.mkv", "Show - 02.mkv"}, names)
}

func TestReadNamesFile_NotFound(t *testing.T) {
	_, err := readNamesFile("/nonexistent/names.txt")
	assert.Error(t, err)
}
