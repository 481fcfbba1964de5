package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  force_strength: 0.001\n"), 0644))

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("physics:\n  force_strength: 0.002\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 0.002, cfg.Physics.ForceStrength)
		// Defaults still merged in
		assert.Equal(t, 300, cfg.Physics.ActivityTicks)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherRelevant(t *testing.T) {
	w := &Watcher{path: filepath.Clean("/tmp/cfg/config.yaml")}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/tmp/cfg/config.yaml", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/tmp/cfg/config.yaml", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/tmp/cfg/config.yaml", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/tmp/cfg/other.yaml", Op: fsnotify.Write}))
}

func TestNewWatcherRejectsEmptyPath(t *testing.T) {
	_, err := NewWatcher("", 0, nil)
	assert.Error(t, err)
}
