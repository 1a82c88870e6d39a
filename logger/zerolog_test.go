package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestZerolog_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Level: "debug", Output: buf})

	l.Info("user registered", "user_id", "abc", "count", 2)
	l.Error("login failed", "error", errors.New("boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "user registered", lines[0]["message"])
	assert.Equal(t, "abc", lines[0]["user_id"])
	assert.Equal(t, float64(2), lines[0]["count"])
	assert.Equal(t, "devconnect", lines[0]["service"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestZerolog_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Level: "warn", Output: buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestZerolog_UnknownLevelDefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Level: "loud", Output: buf})

	l.Debug("hidden")
	l.Info("shown")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
}

func TestZerolog_OddArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(Options{Output: buf}).With("request_id", "r-1")

	l.Info("odd", 7, "dropped", "dangling")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "r-1", lines[0]["request_id"])
	assert.NotContains(t, lines[0], "dropped")
	assert.Contains(t, lines[0], "dangling")
	assert.Nil(t, lines[0]["dangling"])
}
