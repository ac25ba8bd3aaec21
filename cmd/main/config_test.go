package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "expected default config to be written")

	// Loading the written file yields the same values.
	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"model_config": {"ngram_size": 3, "end_marker": "#"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Model.NgramSize)
	assert.Equal(t, "#", cfg.Model.EndMarker)
	assert.Equal(t, 10, cfg.Generate.Count, "omitted sections keep their defaults")
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "Broken JSON", data: `{"model_config": `},
		{name: "Zero ngram size", data: `{"model_config": {"ngram_size": 0, "end_marker": "|"}}`},
		{name: "Long end marker", data: `{"model_config": {"ngram_size": 2, "end_marker": "||"}}`},
		{name: "Empty end marker", data: `{"model_config": {"ngram_size": 2, "end_marker": ""}}`},
		{name: "Negative count", data: `{"generate_config": {"count": -1}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestModelConfigEnd(t *testing.T) {
	r, err := (&ModelConfig{NgramSize: 2, EndMarker: "§"}).End()
	require.NoError(t, err)
	assert.Equal(t, '§', r)
}
