// Package logger provides structured logging utilities.
package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDevelopment selects the human-readable console logger.
const EnvDevelopment = "development"

// Logger is a wrapper around zap.Logger.
type Logger struct {
	*zap.Logger
}

// New creates a JSON logger writing to stdout at the given level.
func New(level string) (*Logger, error) {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.SecondsDurationEncoder

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Encoding:         "json",
		EncoderConfig:    enc,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return build(cfg)
}

// NewDevelopment creates a colored console logger at the given level.
func NewDevelopment(level string) (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return build(cfg)
}

// ForEnvironment picks the console logger for development and the JSON
// logger everywhere else.
func ForEnvironment(env, level string) (*Logger, error) {
	if strings.EqualFold(env, EnvDevelopment) {
		return NewDevelopment(level)
	}
	return New(level)
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func build(cfg zap.Config) (*Logger, error) {
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: z}, nil
}

// With creates a child logger with additional fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// WithConversation scopes a logger to one conversation.
func (l *Logger) WithConversation(conversationID string) *Logger {
	return l.With(zap.String("conversation_id", conversationID))
}

// WithRequest tags a logger with the caller's correlation and user IDs.
func (l *Logger) WithRequest(correlationID, userID string) *Logger {
	return l.With(
		zap.String("correlation_id", correlationID),
		zap.String("user_id", userID),
	)
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	switch strings.ToLower(level) {
	case "warning":
		return zapcore.WarnLevel
	case "":
		return zapcore.InfoLevel
	}
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

var global atomic.Pointer[Logger]

// Global returns the process-wide logger. Until SetGlobal is called it
// discards everything.
func Global() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return NewNop()
}

// SetGlobal sets the process-wide logger.
func SetGlobal(l *Logger) {
	global.Store(l)
}
