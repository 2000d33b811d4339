package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicatorValues_RoundTrip(t *testing.T) {
	ic := &config.IndicatorConfig{
		Source:            "load",
		Alignment:         "top-right",
		OptimalThreshold:  config.Float(1),
		MarginalThreshold: config.Float(2.5),
		CriticalThreshold: config.Float(-4),
		CriticalColor:     "#ff0000",
		StrokeWidth:       config.Float(3),
		Padding:           config.Float(0),
	}

	v := formFromConfig(ic)
	assert.Equal(t, "2.5", v.MarginalThreshold)
	assert.Equal(t, "0", v.Padding, "an explicit zero stays set")
	assert.Empty(t, v.Margin)

	got, err := v.Config()
	require.NoError(t, err)
	assert.Equal(t, *ic, got)
}

func TestIndicatorValues_NilConfig(t *testing.T) {
	v := formFromConfig(nil)
	got, err := v.Config()
	require.NoError(t, err)
	assert.Equal(t, config.IndicatorConfig{}, got)
}

func TestIndicatorValues_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*indicatorValues)
		field string
	}{
		{name: "threshold not a number", edit: func(v *indicatorValues) { v.OptimalThreshold = "low" }, field: "optimal_threshold"},
		{name: "threshold NaN", edit: func(v *indicatorValues) { v.CriticalThreshold = "NaN" }, field: "critical_threshold"},
		{name: "negative padding", edit: func(v *indicatorValues) { v.Padding = "-1" }, field: "padding"},
		{name: "negative radius", edit: func(v *indicatorValues) { v.BorderRadius = "-0.5" }, field: "border_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v indicatorValues
			tt.edit(&v)
			_, err := v.Config()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestIndicatorValues_TrimsText(t *testing.T) {
	v := indicatorValues{Source: " load ", OptimalColor: " green", Padding: " 2 "}
	got, err := v.Config()
	require.NoError(t, err)
	assert.Equal(t, "load", got.Source)
	assert.Equal(t, "green", got.OptimalColor)
	require.NotNil(t, got.Padding)
	assert.Equal(t, 2.0, *got.Padding)
}

func TestValidateColor(t *testing.T) {
	for _, ok := range []string{"", "green", "#ff8800", "none", "214", "darkorange", "lavender"} {
		assert.NoError(t, validateColor(ok), ok)
	}
	for _, bad := range []string{"not-a-color", "#zzzzzz"} {
		assert.Error(t, validateColor(bad), bad)
	}
}

func TestSourceOptions(t *testing.T) {
	cfg := &config.Config{Widgets: []config.Widget{
		{ID: "other-light", Type: config.TypeIndicator},
		{ID: "load", Type: config.TypeCommand},
		{ID: "light", Type: config.TypeIndicator},
		{ID: "disk", Type: config.TypeFile},
	}}

	opts := sourceOptions(cfg, "light")

	var values []string
	for _, o := range opts {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"", "load", "disk", "other-light"}, values)
	assert.Equal(t, "load (command)", opts[1].Key)
}

func TestIndicatorFormBuilds(t *testing.T) {
	v := formFromConfig(&config.IndicatorConfig{Source: "load"})
	form := indicatorForm(&v, sourceOptions(&config.Config{}, "light"))
	require.NotNil(t, form)
}

func TestFindIndicator(t *testing.T) {
	cfg := watchConfig()

	w, err := findIndicator(cfg, "light")
	require.NoError(t, err)
	assert.Equal(t, "light", w.ID)

	_, err = findIndicator(cfg, "load")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an indicator")

	_, err = findIndicator(cfg, "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No widget 'ghost'")
}

func TestConfigureCommand_NeedsTerminal(t *testing.T) {
	if isTerminal(os.Stdin) {
		t.Skip("stdin is a terminal")
	}
	useConfig(t, validPage)

	var buf bytes.Buffer
	err := configureCommand(&buf, "load-light")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUI))
}

func TestConfigureCommand_UnknownWidget(t *testing.T) {
	useConfig(t, validPage)

	err := configureCommand(&bytes.Buffer{}, "nope")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestConfigureCommand_MissingConfig(t *testing.T) {
	useConfig(t, validPage)
	configFlag = filepath.Join(t.TempDir(), "missing.yaml")

	err := configureCommand(&bytes.Buffer{}, "load-light")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
