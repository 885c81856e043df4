package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"DEBUG":    zapcore.DebugLevel,
		"info":     zapcore.InfoLevel,
		"warning":  zapcore.WarnLevel,
		"warn":     zapcore.WarnLevel,
		"error":    zapcore.ErrorLevel,
		"":         zapcore.InfoLevel,
		"nonsense": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	l, err := New("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestForEnvironment(t *testing.T) {
	dev, err := ForEnvironment("Development", "debug")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := ForEnvironment("production", "error")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, prod.Core().Enabled(zapcore.ErrorLevel))
}

func TestGlobalDefaultsToNop(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	global.Store(nil)
	assert.NotNil(t, Global())
	assert.False(t, Global().Core().Enabled(zapcore.ErrorLevel))

	nop := NewNop()
	SetGlobal(nop)
	assert.Same(t, nop, Global())
}

func TestWithRequestAndConversation(t *testing.T) {
	l := NewNop().WithRequest("c1", "u1").WithConversation("conv")
	assert.NotNil(t, l.Logger)
}
