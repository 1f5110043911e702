package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options tunes the logger built by New.
type Options struct {
	// Level is a zap level name ("debug", "info", ...). Empty means info.
	Level string
	// Console also writes human-readable lines to this writer. The TUI leaves
	// it nil because it owns the terminal.
	Console io.Writer
}

// New creates a zap logger that writes JSON to logPath and, optionally,
// console-encoded lines to opts.Console. Profile name and PID are included
// as initial fields.
func New(logPath, profileName string, opts Options) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if parsed, err := zapcore.ParseLevel(opts.Level); err == nil {
			level = parsed
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level),
	}
	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(opts.Console), level))
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.Fields(
			zap.String("profile", profileName),
			zap.Int("pid", os.Getpid()),
		),
	)
	return logger, nil
}
