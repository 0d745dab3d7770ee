package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/trattoria-labs/restaurant-service/internal/config"
)

func TestNewLoggerLevel(t *testing.T) {
	app := config.AppConfig{Name: "restaurant-service", Env: "production", Version: "1.0.0"}

	logger, err := NewLogger(app, config.LoggerConfig{Level: "WARN"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(app, config.LoggerConfig{Level: "chatty", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
