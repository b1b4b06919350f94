package config

import (
	"os"
	"testing"
	"time"

	"github.com/jhenstridge/go-inotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnRewrite(t *testing.T) {
	filename := writeConfig(t, fullConfig)

	reloaded := make(chan *Config, 4)
	w, err := Watch(filename, func(c *Config) { reloaded <- c })
	if err != nil {
		t.Skipf("inotify not available: %s", err)
	}
	defer func() { _ = w.Close() }()

	broken := []byte("world: {x1: 3, x2: 3, y1: 0, y2: 1}\npoint_size: 1\nbot_colour: \"#ffffffff\"\n")
	require.NoError(t, os.WriteFile(filename, broken, 0o644))

	updated := []byte("world: {x1: 0, x2: 50, y1: 0, y2: 25}\npoint_size: 3\nbot_colour: \"#00ff00ff\"\n")
	require.NoError(t, os.WriteFile(filename, updated, 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, float32(50), cfg.World.X2)
		assert.Equal(t, "#00ff00ff", cfg.BotColour)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestWatcherMatchesEntryName(t *testing.T) {
	w := &Watcher{filename: "/srv/viewer/pointsprite.yaml", name: "pointsprite.yaml"}

	// directory watches report the entry name only
	assert.True(t, w.matches(inotify.Event{Name: "pointsprite.yaml", Mask: inotify.IN_CLOSE_WRITE}))
	assert.False(t, w.matches(inotify.Event{Name: "other.yaml", Mask: inotify.IN_CLOSE_WRITE}))
	assert.False(t, w.matches(inotify.Event{Name: "pointsprite.yaml.swp"}))
	assert.False(t, w.matches(inotify.Event{}))
}

func TestWatcherCloseTwice(t *testing.T) {
	filename := writeConfig(t, fullConfig)

	w, err := Watch(filename, func(*Config) {})
	if err != nil {
		t.Skipf("inotify not available: %s", err)
	}

	first := w.Close()
	assert.NoError(t, first)
	require.NotPanics(t, func() {
		assert.Equal(t, first, w.Close())
	})
}
