package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return NewZap(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	logger, logs := observed(zapcore.DebugLevel)

	logger.Debug("network built", "nodes", 10)
	logger.Info("round complete", "household", "h1")
	logger.Warn("low confidence", "count", 2)
	logger.Error("round failed", "error", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(10), entries[0].ContextMap()["nodes"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, "round complete", entries[1].Message)
	assert.Equal(t, "h1", entries[1].ContextMap()["household"])

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapLogger_LevelFilter(t *testing.T) {
	logger, logs := observed(zapcore.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, base, err := New(level, false)
		require.NoError(t, err, level)
		require.NotNil(t, logger)
		require.NotNil(t, base)
	}

	_, base, err := New("info", true)
	require.NoError(t, err)
	assert.True(t, base.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, base.Core().Enabled(zapcore.DebugLevel))

	_, _, err = New("loud", false)
	require.Error(t, err)
}
