package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRespectsLevel(t *testing.T) {
	logger, err := New(Config{Level: "debug", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackOnUnknownLevel(t *testing.T) {
	logger, err := New(Config{Level: "chatty", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")

	logger, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("plan complete")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"plan complete"`)
}

func TestInitializeReplacesGlobals(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: "stderr"}))
	assert.NotSame(t, previous, Logger)
	assert.NotNil(t, Named("propagation"))
}

func TestPackageHelpersUseGlobalLogger(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core)

	Debug("configuration loaded", zap.String("path", "planner.json"))
	Info("plan served")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "planner.json", entries[0].ContextMap()["path"])
	assert.Equal(t, "plan served", entries[1].Message)
}
