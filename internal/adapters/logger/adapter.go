// Package logger provides zap construction and the logging adapter.
package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// NewZapLogger builds a *zap.Logger writing to stderr with the given
// level and encoding ("console" or "json"). Unknown levels fall back to
// warn, which keeps ordinary hook runs quiet.
func NewZapLogger(level, format string) *zap.Logger {
	lvl := zapcore.WarnLevel
	if parsed, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		lvl = parsed
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.EqualFold(format, "json") {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	return zap.New(core)
}

// ZapAdapter adapts a *zap.Logger to the application's logging interface.
type ZapAdapter struct {
	log *zap.Logger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given logger.
func NewZapAdapter(log *zap.Logger) *ZapAdapter {
	return &ZapAdapter{log: log}
}

// Info logs an info message.
func (a *ZapAdapter) Info(_ context.Context, msg string, fields map[string]interface{}) {
	a.log.Info(msg, toZapFields(fields)...)
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(_ context.Context, msg string, fields map[string]interface{}) {
	a.log.Debug(msg, toZapFields(fields)...)
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(_ context.Context, msg string, fields map[string]interface{}) {
	a.log.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message.
func (a *ZapAdapter) Error(_ context.Context, msg string, err error, fields map[string]interface{}) {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	a.log.Error(msg, zf...)
}

// Sync flushes any buffered log entries.
func (a *ZapAdapter) Sync() error {
	return a.log.Sync()
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}
