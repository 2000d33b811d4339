package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T, path string, log logger.Logger) <-chan *Config {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, log, func(c *Config) { changes <- c })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)
	return changes
}

func TestWatch_Reload(t *testing.T) {
	path := writeConfig(t, t.TempDir(), samplePage)
	changes := startWatch(t, path, logger.Noop())

	updated := "interval: 2s\nwidgets:\n  - id: only\n    type: static\n    value: \"3\"\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case cfg := <-changes:
		assert.Equal(t, 2*time.Second, cfg.Interval)
		require.Len(t, cfg.Widgets, 1)
		assert.Equal(t, "only", cfg.Widgets[0].ID)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatch_InvalidKeepsPrevious(t *testing.T) {
	path := writeConfig(t, t.TempDir(), samplePage)
	log := logger.NewBufferLogger()
	changes := startWatch(t, path, log)

	// Parses, but fails validation: unknown widget type.
	require.NoError(t, os.WriteFile(path, []byte("widgets:\n  - id: x\n    type: gauge\n"), 0o644))

	select {
	case cfg := <-changes:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}

	assert.Eventually(t, func() bool { return log.HasLevel("warn") }, time.Second, 10*time.Millisecond)
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/definitely/not/here/.beacon.yaml", nil, func(*Config) {})
	assert.Error(t, err)
}
