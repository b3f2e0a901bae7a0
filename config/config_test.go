package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/logger"
)

func TestApplyTo_WriterSetup(t *testing.T) {
	m := logger.NewManager()
	var buf bytes.Buffer

	err := ApplyTo(m, Config{Level: "DEBUG", Writer: &buf})
	require.NoError(t, err)

	root := m.Root()
	require.Len(t, root.Handlers(), 1)
	assert.Equal(t, core.DebugLevel, root.Level())

	root.Debug("configured")
	assert.Contains(t, buf.String(), "configured")
}

func TestApplyTo_NoOpWhenHandlersExist(t *testing.T) {
	m := logger.NewManager()
	var first, second bytes.Buffer

	require.NoError(t, ApplyTo(m, Config{Writer: &first}))
	require.NoError(t, ApplyTo(m, Config{Level: "DEBUG", Writer: &second}))

	root := m.Root()
	assert.Len(t, root.Handlers(), 1, "a configured root must not gain duplicate handlers")
	assert.Equal(t, core.WarningLevel, root.Level(), "the second call must not touch the level either")

	root.Warning("routed")
	assert.Contains(t, first.String(), "routed")
	assert.Empty(t, second.String())
}

func TestApplyTo_ForceReplaces(t *testing.T) {
	m := logger.NewManager()
	var first, second bytes.Buffer

	require.NoError(t, ApplyTo(m, Config{Writer: &first}))
	require.NoError(t, ApplyTo(m, Config{Writer: &second, Force: true}))

	root := m.Root()
	require.Len(t, root.Handlers(), 1)

	root.Warning("rerouted")
	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "rerouted")
}

func TestApplyTo_JSONFormat(t *testing.T) {
	m := logger.NewManager()
	var buf bytes.Buffer

	require.NoError(t, ApplyTo(m, Config{Format: "json", Writer: &buf}))
	m.Root().Warning("structured")

	assert.True(t, strings.HasPrefix(buf.String(), "{"), "output should be JSON: %s", buf.String())
	assert.Contains(t, buf.String(), `"level":"WARNING"`)
}

func TestApplyTo_FileSetup(t *testing.T) {
	m := logger.NewManager()
	path := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, ApplyTo(m, Config{Filename: path, MaxSizeMB: 10}))
	m.Root().Warning("to disk")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to disk")
}

func TestApplyTo_InvalidLevel(t *testing.T) {
	m := logger.NewManager()
	err := ApplyTo(m, Config{Level: "VERBOSE"})
	require.Error(t, err)
	assert.Empty(t, m.Root().Handlers(), "a failed apply must leave the root untouched")
}

func TestApplyTo_InvalidFormat(t *testing.T) {
	err := ApplyTo(logger.NewManager(), Config{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyTo_NegativeRotation(t *testing.T) {
	err := ApplyTo(logger.NewManager(), Config{MaxSizeMB: -1})
	require.Error(t, err)
}

func TestApplyTo_FilenameAndWriterExclusive(t *testing.T) {
	var buf bytes.Buffer
	err := ApplyTo(logger.NewManager(), Config{Filename: "x.log", Writer: &buf})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
