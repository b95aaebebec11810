package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"", LevelInfo},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	child := logger.With(String("session", "abc"))
	child.Info("drag started",
		Int("index", 3),
		Float64("x", 1.5),
		Bool("dirty", true),
		Err(errors.New("nope")),
		Any("extra", []int{1}),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "drag started", entries[0].Message)
	assert.Equal(t, "abc", ctx["session"])
	assert.Equal(t, int64(3), ctx["index"])
	assert.Equal(t, 1.5, ctx["x"])
	assert.Equal(t, true, ctx["dirty"])
	assert.Equal(t, "nope", ctx["error"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	assert.Equal(t, 2, logs.Len())
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().With(String("k", "v")).Error("ignored")
	})
}
