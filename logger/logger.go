package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

func init() {
	log = build(zap.InfoLevel)
}

// Init replaces the global logger with one at the given level
// (debug, info, warn or error; anything else means info).
func Init(level string) {
	var logLevel zapcore.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = zap.DebugLevel
	case "info":
		logLevel = zap.InfoLevel
	case "warn", "warning":
		logLevel = zap.WarnLevel
	case "error":
		logLevel = zap.ErrorLevel
	default:
		logLevel = zap.InfoLevel
	}

	log = build(logLevel)
}

func build(level zapcore.Level) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "json"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "log_level"
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.StacktraceKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.OutputPaths = []string{"stdout"}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// With returns the underlying logger carrying the given fields, for call
// sites that log several lines about the same run.
func With(fields ...zap.Field) *zap.Logger {
	return log.With(fields...)
}

func Debug(msg string, args ...interface{}) {
	log.Debug(format(msg, args...))
}

func Info(msg string, args ...interface{}) {
	log.Info(format(msg, args...))
}

func Warn(msg string, args ...interface{}) {
	log.Warn(format(msg, args...))
}

func Error(msg string, args ...interface{}) {
	log.Error(format(msg, args...))
}

// Sync flushes buffered log entries
func Sync() {
	_ = log.Sync()
}

func format(msg string, args ...interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
