package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"emistat/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, muted: slog.LevelDebug - 4},
		{level: "info", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, muted: slog.LevelWarn},
		{level: "bogus", enabled: slog.LevelInfo, muted: slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(config.LoggingConfig{Level: tt.level, Format: "json"})
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.muted))
		})
	}
}

func TestNew_SetsDefault(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "info", Format: "text"})
	assert.Same(t, logger, slog.Default())
}
