package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New(false, false)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_Debug(t *testing.T) {
	log, err := New(false, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_JSON(t *testing.T) {
	log, err := New(true, false)
	require.NoError(t, err)
	require.NotNil(t, log)
}
