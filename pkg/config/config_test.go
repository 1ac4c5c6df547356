package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loggraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[render]
color = false

[source]
default_scheme = "text"
limit = 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Render.Color)
	assert.False(t, cfg.Render.Compact)
	assert.Equal(t, "text", cfg.Source.DefaultScheme)
	assert.Equal(t, 50, cfg.Source.Limit)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[render]\ncompact = true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Render.Compact)
	assert.True(t, cfg.Render.Color)
	assert.Equal(t, Default().Source, cfg.Source)
	assert.Equal(t, Default().Log, cfg.Log)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed", content: "[log\nlevel = 1"},
		{name: "bad format", content: "[log]\nformat = \"xml\"\n"},
		{name: "negative limit", content: "[source]\nlimit = -1\n"},
		{name: "wrong type", content: "[source]\nlimit = \"many\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Source.Limit = 7

	data, err := cfg.Encode()
	require.NoError(t, err)

	loaded, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
