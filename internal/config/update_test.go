package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editablePage = `version: 1
# page-wide cadence
interval: 1s
widgets:
  - id: load
    type: command
    command: uptime
  - id: light
    label: Load light
    type: indicator
    indicator:
      source: load
      padding: 4
  - id: bare
    type: indicator
`

func TestSaveIndicator(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, editablePage)

	err := SaveIndicator(path, "light", IndicatorConfig{
		Source:           "load",
		OptimalThreshold: Float(0.5),
		CriticalColor:    "crimson",
		Alignment:        "bottom-right",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# page-wide cadence", "comments survive")
	assert.Contains(t, text, "label: Load light")
	assert.Contains(t, text, "critical_color: crimson")
	assert.NotContains(t, text, "padding: 4", "the block is replaced whole")

	cfg, err := Load(path)
	require.NoError(t, err)
	w, ok := cfg.Widget("light")
	require.True(t, ok)
	require.NotNil(t, w.Indicator)
	assert.Equal(t, "bottom-right", w.Indicator.Alignment)
	require.NotNil(t, w.Indicator.OptimalThreshold)
	assert.Equal(t, 0.5, *w.Indicator.OptimalThreshold)
	assert.Nil(t, w.Indicator.Padding)
}

func TestSaveIndicator_AddsMissingBlock(t *testing.T) {
	path := writeConfig(t, t.TempDir(), editablePage)

	require.NoError(t, SaveIndicator(path, "bare", IndicatorConfig{Source: "load", IconWidth: Float(12)}))

	cfg, err := Load(path)
	require.NoError(t, err)
	w, _ := cfg.Widget("bare")
	require.NotNil(t, w.Indicator)
	assert.Equal(t, "load", w.Indicator.Source)
	assert.Equal(t, 12.0, *w.Indicator.IconWidth)
}

func TestSaveIndicator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		id      string
	}{
		{"unknown widget", editablePage, "ghost"},
		{"not an indicator", editablePage, "load"},
		{"no widgets", "version: 1\n", "light"},
		{"not a mapping", "- a\n- b\n", "light"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			err := SaveIndicator(path, tt.id, IndicatorConfig{})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))

			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, string(data), "file untouched on error")
		})
	}

	err := SaveIndicator(filepath.Join(t.TempDir(), "missing.yaml"), "x", IndicatorConfig{})
	assert.Error(t, err)
}
