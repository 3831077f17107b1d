package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_UsesTomlNames(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "sysprefs configuration", doc["title"])
	assert.Contains(t, string(data), `"tick_interval"`)
	assert.Contains(t, string(data), `"double_click_interval"`)
	assert.NotContains(t, string(data), `"TickInterval"`)
}

func TestGenerateSchemaFile(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManagerWithFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	path, err := mgr.GenerateSchemaFile()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, schemaFileName), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
