package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("trace")
	assert.Error(t, err)
}

func TestJSONLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("executing screenshot command", "command", "screencapture -i x.png")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "executing screenshot command", entry["msg"])
	assert.Equal(t, "screencapture -i x.png", entry["command"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}
