package logging

import (
	"log/slog"
	"os"
	"sync"
)

// Fields holds structured context attached to log entries
type Fields map[string]any

// Logger defines the logging interface used across the library
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

// slogLogger is the default Logger implementation backed by log/slog
type slogLogger struct {
	logger *slog.Logger
	fields Fields
}

// NewLogger creates a logger writing text output to stderr
func NewLogger() Logger {
	return &slogLogger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
		fields: make(Fields),
	}
}

// NewLoggerWithHandler creates a logger with a custom slog handler
func NewLoggerWithHandler(handler slog.Handler) Logger {
	return &slogLogger{
		logger: slog.New(handler),
		fields: make(Fields),
	}
}

func (l *slogLogger) attrs(fields []Fields) []any {
	args := make([]any, 0, 2*(len(l.fields)+4))
	for k, v := range l.fields {
		args = append(args, slog.Any(k, v))
	}
	for _, f := range fields {
		for k, v := range f {
			args = append(args, slog.Any(k, v))
		}
	}
	return args
}

func (l *slogLogger) Debug(msg string, fields ...Fields) {
	l.logger.Debug(msg, l.attrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields ...Fields) {
	l.logger.Info(msg, l.attrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields ...Fields) {
	l.logger.Warn(msg, l.attrs(fields)...)
}

func (l *slogLogger) Error(err error, msg string, fields ...Fields) {
	args := l.attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.logger.Error(msg, args...)
}

func (l *slogLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &slogLogger{logger: l.logger, fields: merged}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewLogger()
)

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger replaces the process-wide logger
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Fields) {
	GetGlobalLogger().Debug(msg, fields...)
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Fields) {
	GetGlobalLogger().Info(msg, fields...)
}

// Warn logs a warning using the global logger
func Warn(msg string, fields ...Fields) {
	GetGlobalLogger().Warn(msg, fields...)
}

// Error logs an error using the global logger
func Error(err error, msg string, fields ...Fields) {
	GetGlobalLogger().Error(err, msg, fields...)
}
