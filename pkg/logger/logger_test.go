package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
	} {
		got, err := parseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "herald.log")
	log, closeLog, err := New(Options{File: path})
	require.NoError(t, err)

	log.Info("campaign started", slog.Int("recipients", 3))
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "campaign started", rec["msg"])
	assert.EqualValues(t, 3, rec["recipients"])
}

func TestRunIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := newContextHandler(slog.NewJSONHandler(&buf, nil), RunIDExtractor)
	log := slog.New(handler)

	ctx := WithRunID(context.Background(), "run-42")
	log.InfoContext(ctx, "delivery failed")
	log.InfoContext(context.Background(), "no run")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `"run_id":"run-42"`)
	assert.NotContains(t, string(lines[1]), "run_id")
}

func TestFanout_LevelPerDestination(t *testing.T) {
	t.Parallel()

	var infoBuf, errBuf bytes.Buffer
	handler := newFanoutHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(handler)

	log.Info("routine")
	log.Error("boom")

	assert.Contains(t, infoBuf.String(), "routine")
	assert.Contains(t, infoBuf.String(), "boom")
	assert.NotContains(t, errBuf.String(), "routine")
	assert.Contains(t, errBuf.String(), "boom")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := NewNope()
	require.NotNil(t, log)
	log.Info("discarded")
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
