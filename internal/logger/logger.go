// Package logger wraps zap with the key/value call style used across the service.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger is a thin wrapper over a zap SugaredLogger. Every method takes a
// message followed by alternating keys and values, e.g.
//
//	log.Info("profile generated", "questClass", class, "elapsed", d)
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a production (JSON) or development (console) logger.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Sync flushes buffered entries. Call it before the process exits.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

// Debug logs at debug level; dropped in prod mode.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}

// Warn logs recoverable failures, such as a rejected generation.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}

// Error logs failures that need an operator's attention.
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}

// Fatal logs and then exits the process with status 1.
func (l *Logger) Fatal(msg string, keysAndValues ...any) {
	l.SugaredLogger.Fatalw(msg, keysAndValues...)
}

// With returns a child logger that adds the given fields to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}
