// Package logger builds the zap logger used for diagnostics. Log
// output goes to a file under the storage root so user-facing command
// output on stdout stays clean.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "todo.log"

// New returns a logger writing JSON entries to <logDir>/todo.log.
// With debug set, the level drops to Debug and entries are also
// echoed to stderr. If the log file cannot be prepared the logger
// degrades to a no-op rather than failing the command.
func New(logDir string, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	cores := make([]zapcore.Core, 0, 2)
	if err := os.MkdirAll(logDir, 0o755); err == nil {
		path := filepath.Join(logDir, logFileName)
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level))
		}
	}
	if debug {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stderr), level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
