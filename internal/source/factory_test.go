package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		widget  config.Widget
		want    any
		wantErr bool
	}{
		{widget: config.Widget{ID: "a", Type: config.TypeStatic, Value: "1"}, want: Static{}},
		{widget: config.Widget{ID: "b", Type: config.TypeFile, Path: "/tmp/x"}, want: File{}},
		{widget: config.Widget{ID: "c", Type: config.TypeCommand, Command: "date"}, want: Command{}},
		{widget: config.Widget{ID: "d", Type: config.TypeSSH, Host: "h", Command: "date"}, want: &SSH{}},
		{widget: config.Widget{ID: "e", Type: config.TypeHTTP, URL: "http://x"}, want: &HTTP{}},
		{widget: config.Widget{ID: "f", Type: config.TypePrometheus, URL: "http://x", Metric: "m"}, want: &Prometheus{}},
		{widget: config.Widget{ID: "g", Type: config.TypeSQLite, Path: "x.db", Query: "SELECT 1"}, want: &SQLite{}},
		{widget: config.Widget{ID: "h", Type: config.TypePostgres, DSN: "postgres://x", Query: "SELECT 1"}, want: &Postgres{}},
		{widget: config.Widget{ID: "i", Type: config.TypeIndicator}, wantErr: true},
		{widget: config.Widget{ID: "j", Type: "gauge"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.widget.ID, func(t *testing.T) {
			src, err := New(tt.widget, Options{})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
		})
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v"), []byte("88"), 0o644))

	cfg := &config.Config{
		Timeout: time.Second,
		Widgets: []config.Widget{
			{ID: "fixed", Type: config.TypeStatic, Value: "50"},
			{ID: "file", Type: config.TypeFile, Path: filepath.Join(dir, "v")},
			{ID: "light", Type: config.TypeIndicator, Indicator: &config.IndicatorConfig{Source: "fixed"}},
			{ID: "odd", Type: "gauge"},
		},
	}

	reg := Build(cfg, nil, Options{Dir: dir})
	defer reg.Close()

	assert.Equal(t, []string{"fixed", "file", "odd"}, reg.IDs())
	assert.False(t, reg.Has("light"))

	text, err := reg.Read(context.Background(), "file")
	require.NoError(t, err)
	assert.Equal(t, "88", text)

	// Broken widgets report their build error on read.
	_, err = reg.Read(context.Background(), "odd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gauge")

	// Indicators are not sources.
	_, err = reg.Read(context.Background(), "light")
	assert.ErrorIs(t, err, ErrNotFound)
}

type slowSource struct{}

func (slowSource) Read(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestTimed(t *testing.T) {
	src := timed{Source: slowSource{}, timeout: 20 * time.Millisecond}
	start := time.Now()
	_, err := src.Read(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.NoError(t, src.Close())
}
