// Package logger builds the zap logger shared by the server components.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/freshkeep/backend/config"
)

// New returns a JSON production logger in production and a human readable
// development logger everywhere else.
func New(env config.Environment) (*zap.Logger, error) {
	if env.IsProduction() {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if env == config.Test || env == config.CI {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// Sync flushes buffered entries. Errors from syncing stderr on some
// platforms are expected and ignored.
func Sync(l *zap.Logger) {
	_ = l.Sync()
}
