package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds configuration for the zap logger
type Config struct {
	// Path is the log file path, empty means stderr
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
}

// ZapLogger implements Logger on top of zap
type ZapLogger struct {
	base  *zap.Logger
	close func() error
}

// NewZapLogger creates a logger writing to cfg.Path, appending to existing files
func NewZapLogger(cfg Config) (*ZapLogger, error) {
	if cfg.Path == "" {
		return newZapLogger(zapcore.Lock(os.Stderr), cfg, nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return newZapLogger(zapcore.AddSync(file), cfg, file.Close), nil
}

func newZapLogger(ws zapcore.WriteSyncer, cfg Config, closer func() error) *ZapLogger {
	core := zapcore.NewCore(buildEncoder(cfg.Format), ws, zapLevel(cfg.Level))
	return &ZapLogger{
		base:  zap.New(core),
		close: closer,
	}
}

func buildEncoder(format Format) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	if format == FormatJSON {
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZapFields converts Fields in key order so output is stable
func toZapFields(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// Debug logs a debug message
func (l *ZapLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.base.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message
func (l *ZapLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.base.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message
func (l *ZapLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.base.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message
func (l *ZapLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.base.Error(msg, zf...)
}

// WithFields returns a logger with additional fields. The child shares the
// parent's output and must not be closed separately.
func (l *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{base: l.base.With(toZapFields(fields)...)}
}

// Close flushes and closes the logger
func (l *ZapLogger) Close() error {
	// Sync on stderr fails with EINVAL on some platforms; only file sinks matter
	syncErr := l.base.Sync()
	if l.close == nil {
		return nil
	}
	if err := l.close(); err != nil {
		return err
	}
	return syncErr
}
