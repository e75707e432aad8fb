package config

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging levels accepted in the configuration file.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PrepareWith builds the console logger. Informational output goes to stdout
// and errors to stderr, both without caller annotations.
func (conf LoggingConfig) PrepareWith(stdout, stderr io.Writer) *zap.Logger {
	var minLevel zapcore.Level
	switch conf.Level {
	case LevelDebug:
		minLevel = zapcore.DebugLevel
	case LevelNormal, "":
		minLevel = zapcore.InfoLevel
	default:
		return zap.NewNop()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stdout)), lowPriority),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stderr)), highPriority),
	)
	return zap.New(core)
}
