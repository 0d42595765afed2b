package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStore_EmptyRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.json")

	require.NoError(t, SaveJSON([]Genre{}, path))
	got := LoadJSON[Genre](path)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, SaveJSON[Genre](nil, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestJSONStore_PopulatedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "editorials.json")
	in := []Editorial{
		{ID: "E2", Name: "Alfaguara", Country: "España", FoundedYear: 1964},
		{ID: "E1", Name: "Norma", Country: "Colombia", FoundedYear: 1960},
	}

	require.NoError(t, SaveJSON(in, path))
	assert.Equal(t, in, LoadJSON[Editorial](path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "España")
	assert.Contains(t, text, "\n        \"name\": \"Alfaguara\"")
	assert.Contains(t, text, `"founded_year": 1964`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestJSONStore_MissingFile(t *testing.T) {
	got := LoadJSON[Genre](filepath.Join(t.TempDir(), "absent.json"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "G1", "name": `), 0o644))

	got := LoadJSON[Genre](path)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONStore_OverwritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.json")
	require.NoError(t, SaveJSON([]Genre{{ID: "G1", Name: "Uno"}, {ID: "G2", Name: "Dos"}}, path))
	require.NoError(t, SaveJSON([]Genre{{ID: "G3", Name: "Tres"}}, path))

	got := LoadJSON[Genre](path)
	require.Len(t, got, 1)
	assert.Equal(t, "Tres", got[0].Name)

	data, _ := os.ReadFile(path)
	assert.False(t, strings.Contains(string(data), "Uno"))
}

func TestJSONStore_FileIsWorldReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.json")
	require.NoError(t, SaveJSON([]Genre{{ID: "G1", Name: "Novela"}}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
