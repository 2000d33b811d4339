package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/monitor"
	"github.com/rileyhilliard/beacon/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func watchConfig() *config.Config {
	return &config.Config{
		Interval: time.Hour,
		Timeout:  time.Second,
		Widgets: []config.Widget{
			{ID: "load", Type: config.TypeStatic, Value: "25"},
			{ID: "motd", Type: config.TypeStatic, Value: "all good"},
			{ID: "light", Type: config.TypeIndicator, Indicator: &config.IndicatorConfig{
				Source:            "load",
				OptimalThreshold:  config.Float(10),
				MarginalThreshold: config.Float(20),
				CriticalThreshold: config.Float(30),
			}},
			{ID: "idle", Type: config.TypeIndicator, Indicator: &config.IndicatorConfig{}},
		},
	}
}

func runWatch(t *testing.T, cfg *config.Config, opts watchOptions) string {
	t.Helper()
	page := monitor.NewPage(cfg, logger.Noop(), source.Options{})
	t.Cleanup(func() { _ = page.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	require.NoError(t, watchLoop(ctx, page, &buf, opts, nil))
	require.NoError(t, ctx.Err(), "--once should finish before the deadline")
	return buf.String()
}

func TestWatchLoop_OncePrintsEveryWidget(t *testing.T) {
	out := runWatch(t, watchConfig(), watchOptions{Once: true})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	byWidget := make(map[string]string)
	for _, line := range lines {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 2, line)
		byWidget[fields[1]] = line
	}

	assert.Contains(t, byWidget["load"], "25")
	assert.Contains(t, byWidget["motd"], "all good")
	assert.Contains(t, byWidget["light"], "critical")
	assert.Contains(t, byWidget["light"], "red")
	assert.Contains(t, byWidget["idle"], "no source")
}

func TestWatchLoop_FilterByID(t *testing.T) {
	out := runWatch(t, watchConfig(), watchOptions{IDs: []string{"light"}, Once: true})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "light")
	assert.NotContains(t, out, "motd")
}

func TestWatchLoop_UnknownID(t *testing.T) {
	page := monitor.NewPage(watchConfig(), logger.Noop(), source.Options{})
	defer page.Close()

	var buf bytes.Buffer
	err := watchLoop(context.Background(), page, &buf, watchOptions{IDs: []string{"ghost"}}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Zero(t, page.LiveTimers(), "nothing is mounted for a bad filter")
}

func TestWatchLoop_JSON(t *testing.T) {
	out := runWatch(t, watchConfig(), watchOptions{IDs: []string{"light", "motd"}, Once: true, JSON: true})

	events := make(map[string]watchEvent)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var ev watchEvent
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		events[ev.Widget] = ev
	}
	require.Len(t, events, 2)

	light := events["light"]
	assert.Equal(t, config.TypeIndicator, light.Type)
	assert.Equal(t, "critical", light.Band)
	assert.Equal(t, "red", light.Color)
	require.NotNil(t, light.Value)
	assert.Equal(t, 25.0, *light.Value)

	motd := events["motd"]
	assert.Equal(t, "all good", motd.Text)
	assert.Nil(t, motd.Value, "non-numeric text has no value")
}

func TestWatchLoop_UnparsableSource(t *testing.T) {
	cfg := watchConfig()
	cfg.Widgets[0].Value = "N/A"

	out := runWatch(t, cfg, watchOptions{IDs: []string{"light"}, Once: true, JSON: true})

	var ev watchEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &ev))
	assert.Empty(t, ev.Band)
	assert.Nil(t, ev.Value)
	assert.Equal(t, "gray", ev.Color, "unclassified falls back to the polling color")
	assert.NotEmpty(t, ev.Error)
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	page := monitor.NewPage(watchConfig(), logger.Noop(), source.Options{})
	defer page.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var buf bytes.Buffer
	go func() { done <- watchLoop(ctx, page, &buf, watchOptions{}, nil) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
	assert.Zero(t, page.LiveTimers())
}

func TestPrinter_SkipsUnchanged(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, watchOptions{})
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, p.print(watchEvent{Time: at, Widget: "load", Type: config.TypeStatic, Text: "1"}))
	require.NoError(t, p.print(watchEvent{Time: at.Add(time.Second), Widget: "load", Type: config.TypeStatic, Text: "1"}))
	require.NoError(t, p.print(watchEvent{Time: at.Add(2 * time.Second), Widget: "load", Type: config.TypeStatic, Text: "2"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "12:00:00"))
	assert.True(t, strings.HasPrefix(lines[1], "12:00:02"))
}

func TestPrinter_Format(t *testing.T) {
	p := newPrinter(&bytes.Buffer{}, watchOptions{})
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	v := 72.5

	tests := []struct {
		name string
		ev   watchEvent
		want []string
	}{
		{
			name: "classified indicator",
			ev:   watchEvent{Time: at, Widget: "cpu", Type: config.TypeIndicator, Value: &v, Band: "marginal", Color: "orange"},
			want: []string{"09:30:00", "cpu", "● 72.5", "marginal", "orange"},
		},
		{
			name: "unclassified indicator",
			ev:   watchEvent{Time: at, Widget: "cpu", Type: config.TypeIndicator, Error: "value is not a number", Color: "gray"},
			want: []string{"⊘ value is not a number", "gray"},
		},
		{
			name: "failed source",
			ev:   watchEvent{Time: at, Widget: "disk", Type: config.TypeFile, Error: "Can't read /x"},
			want: []string{"✗ Can't read /x"},
		},
		{
			name: "source text",
			ev:   watchEvent{Time: at, Widget: "disk", Type: config.TypeFile, Text: "81%"},
			want: []string{"disk", "81%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := p.format(tt.ev)
			for _, s := range tt.want {
				assert.Contains(t, line, s)
			}
			assert.NotContains(t, line, "\x1b[", "color is off for non-terminals")
		})
	}
}
