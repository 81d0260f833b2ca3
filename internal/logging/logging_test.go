package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutoFormatWritesJSONWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(slog.LevelInfo, "auto", &buf)
	require.NoError(t, err)

	logger.Info("Packaged download", "file", "track.mp3")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Packaged download", record["msg"])
	assert.Equal(t, "track.mp3", record["file"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(slog.LevelInfo, "text", &buf)
	require.NoError(t, err)

	logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(slog.LevelWarn, "json", &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	assert.Empty(t, buf.String())
	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(slog.LevelInfo, "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestIsTerminalForBuffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
