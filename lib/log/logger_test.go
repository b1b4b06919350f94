package log

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerPrintsModuleAndMessage(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil)).With("module", "rendering")

	logger.Info("buffer resized", "len", 12)

	line := out.String()
	assert.Contains(t, line, "[rendering] ")
	assert.Contains(t, line, "buffer resized")
	assert.Contains(t, line, "INFO")
	assert.Equal(t, byte('\n'), line[len(line)-1])
}

func TestHandlerAppendsError(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil))

	logger.Error("could not link", "err", errors.New("boom"))

	assert.Contains(t, out.String(), "could not link")
	assert.Contains(t, out.String(), ": boom")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("hidden")
	assert.Empty(t, out.String())

	logger.Warn("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestModuleFollowsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := Module("camera")

	var out bytes.Buffer
	slog.SetDefault(slog.New(NewHandler(&out, nil)))
	logger.Info("recomputed")

	require.NotEmpty(t, out.String())
	assert.Contains(t, out.String(), "[camera] ")
	assert.Contains(t, out.String(), "recomputed")
}
