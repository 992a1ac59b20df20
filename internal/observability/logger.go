package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"prsentinel/internal/config"
)

// Logger is a thin leveled key/value logger over zap's sugared API.
type Logger struct {
	s *zap.SugaredLogger
}

func NewLogger(cfg *config.Config) *Logger {
	level := zapcore.DebugLevel
	if cfg != nil {
		if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
	}

	zcfg := zap.NewProductionConfig()
	if cfg != nil && cfg.Env == "local" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	z, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		z = zap.NewNop()
	}

	return &Logger{s: z.Sugar()}
}

func (l *Logger) Debug(msg string, kv ...any) {
	l.s.Debugw(msg, kv...)
}

func (l *Logger) Info(msg string, kv ...any) {
	l.s.Infow(msg, kv...)
}

func (l *Logger) Warn(msg string, kv ...any) {
	l.s.Warnw(msg, kv...)
}

func (l *Logger) Error(msg string, kv ...any) {
	l.s.Errorw(msg, kv...)
}

func (l *Logger) Sync() {
	_ = l.s.Sync()
}
