package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfoJSON(t *testing.T) {
	log := New(Config{})
	require.NotNil(t, log)
	require.True(t, log.Enabled(nil, slog.LevelInfo))
	require.False(t, log.Enabled(nil, slog.LevelDebug))
}

func TestNewTextFormatWritesPlainLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parahpf.log")
	New(Config{Format: "text", Output: "file", FilePath: path}).Info("hello", "k", "v")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=hello")
}

func TestWithRunAttachesRunID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	tagged := WithRun(base, "run-123")
	tagged.Info("solved")
	require.True(t, strings.Contains(buf.String(), `"run_id":"run-123"`))
}
