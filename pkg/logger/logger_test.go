package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("skipped %d", 1)
	log.Warn("kept booking=%d", 42)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "kept booking=42", entry["msg"])
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("hello %s", "court")
	log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello court")
}
