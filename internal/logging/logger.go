// Package logging builds the logr.Logger handed to every component.
//
// Logs go to a file: the interactive host owns the terminal. An empty level
// disables logging entirely.
package logging

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar overrides the configured level when set.
const LevelEnvVar = "SNAV_LOG_LEVEL"

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

// Options selects where and how much to log.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Empty disables logging.
	Level string
	// File is the output path. "stderr" and "stdout" are accepted.
	File string
	// Format is "json" or "console".
	Format string
}

// Logger bundles the logr front end with the zap logger that backs it.
type Logger struct {
	logr.Logger
	zap *zap.Logger
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: logr.Discard(), zap: zap.NewNop()}
}

// ParseLevel maps a level name to a zap level. trace enables V(2) output.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zapcore.Level(-2), nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// New builds a Logger from opts. The level from LevelEnvVar wins over
// opts.Level when set.
func New(opts Options) (*Logger, error) {
	level := opts.Level
	if env := os.Getenv(LevelEnvVar); env != "" {
		level = env
	}
	if level == "" {
		return Discard(), nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	file := opts.File
	if file == "" {
		file = "snav.log"
	}

	encoding := opts.Format
	if encoding == "" {
		encoding = "json"
	}
	if encoding != "json" && encoding != "console" {
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey
	if encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{file},
		ErrorOutputPaths: []string{"stderr"},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &Logger{Logger: zapr.NewLogger(zl), zap: zl}, nil
}

// Sync flushes buffered entries. Errors from syncing terminals and pipes are
// ignored.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if err := l.zap.Sync(); err != nil && !isIgnorableSyncError(err) {
		return err
	}
	return nil
}

func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) ||
		errors.Is(err, syscall.EBADF)
}
