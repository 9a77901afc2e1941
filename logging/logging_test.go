package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maxpert/amqp-go-client/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in).Level())
		})
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	cfg := config.DefaultConfig().Log
	cfg.Format = "json"
	cfg.File = path

	logger, level, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("frame received", zap.Uint16("channel_id", 3))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"frame received"`)
	assert.Contains(t, string(data), `"channel_id":3`)
	assert.NotContains(t, string(data), "hidden")

	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("now visible")
	require.NoError(t, logger.Sync())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "now visible")
}

func TestNewLoggerConsole(t *testing.T) {
	cfg := config.DefaultConfig().Log
	cfg.Development = true
	cfg.Level = "error"

	logger, level, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zapcore.ErrorLevel, level.Level())
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
}
