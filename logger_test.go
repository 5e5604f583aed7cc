package aegisweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, env := range []string{EnvDevelopment, EnvStaging, EnvProduction} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			logger, err := NewLogger(env)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(zap.InfoLevel))
			assert.False(t, logger.Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestNewLoggerHonoursLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	logger, err := NewLogger(EnvProduction)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	t.Setenv("LOG_LEVEL", "chatty")
	logger, err = NewLogger(EnvProduction)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
