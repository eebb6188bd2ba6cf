// Package diag holds the diagnostics sink shared by the converters.
// Whether anything is emitted is decided per call through a Reporter.
package diag

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger   *zap.Logger
	loggerMu sync.Mutex
)

// Logger returns the diagnostics logger.
// It defaults to a console logger on stderr.
func Logger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = NewConsole(zapcore.DebugLevel)
	}
	return logger
}

// SetLogger replaces the diagnostics logger. A nil logger installs a no-op one.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// NewConsole builds a human-readable logger writing to stderr.
func NewConsole(level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

// Reporter emits skip diagnostics only when enabled.
type Reporter struct {
	enabled bool
	log     *zap.Logger
}

// NewReporter returns a Reporter. A nil logger falls back to Logger().
func NewReporter(enabled bool, log *zap.Logger) Reporter {
	return Reporter{enabled: enabled, log: log}
}

// Skip reports a value that was dropped from the output.
func (r Reporter) Skip(msg string, fields ...zap.Field) {
	if !r.enabled {
		return
	}
	l := r.log
	if l == nil {
		l = Logger()
	}
	l.Warn(msg, fields...)
}
