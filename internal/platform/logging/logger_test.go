package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLogger_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "grader")

	logger.InfoContext(context.Background(), "graded", "game_id", "game-1", "count", 3)
	logger.Error("failed", "error", assert.AnError, "dangling")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "graded", entries[0].Message)
	assert.Equal(t, "game-1", entries[0].ContextMap()["game_id"])
	assert.Equal(t, "grader", entries[0].ContextMap()["component"])
	assert.Equal(t, assert.AnError.Error(), entries[1].ContextMap()["error"])
	assert.Contains(t, entries[1].ContextMap(), "dangling")
}

func TestDefault_NilResetsToNop(t *testing.T) {
	SetDefault(nil)
	assert.NotNil(t, Default())

	var logger *Logger
	assert.NotPanics(t, func() { logger.Info("no receiver") })
}

func TestZapFields_AcceptsFields(t *testing.T) {
	fields := zapFields([]any{zap.Int("week", 1), "scope", "2025:preseason:1"})
	require.Len(t, fields, 2)
	assert.Equal(t, "week", fields[0].Key)
	assert.Equal(t, "scope", fields[1].Key)
}

func TestNewConsole_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf)
	logger.Debug("hidden")
	logger.Info("seeded", "games", 16)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "seeded")
	assert.Contains(t, buf.String(), `"games"`)
}
