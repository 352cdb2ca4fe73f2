package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"knapsack/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig()
	cfg.Format = "json"
	log, closeFn := logging.New(cfg, &buf)
	defer closeFn()

	log.Debug("hidden")
	log.Info("run finished", "profit", 60)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "run finished", rec["msg"])
	require.EqualValues(t, 60, rec["profit"])
	require.Contains(t, rec, "timestamp")
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	log, _ := logging.New(logging.Config{Level: "debug"}, &buf)
	log.Debug("incumbent improved", "iteration", 3)
	require.Contains(t, buf.String(), "incumbent improved")
	require.Contains(t, buf.String(), "iteration=3")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knapsack.log")
	cfg := logging.DefaultConfig()
	cfg.File = path
	log, closeFn := logging.New(cfg, nil)
	log.Warn("budget exhausted")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "budget exhausted")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	require.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	require.NotNil(t, logging.OrDiscard(nil))
	require.False(t, logging.Discard().Enabled(context.Background(), slog.LevelError))
}
