// Package logging builds the process-wide zap logger from configuration.
package logging

import (
	"github.com/cockroachdb/errors"
	"github.com/mj1618/axbridge/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger pairs a zap logger with the level it was built with, so a config
// reload can change verbosity without rebuilding sinks.
type Logger struct {
	*zap.Logger
	Level zap.AtomicLevel
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, errors.Wrapf(err, "log level %q", s)
	}
	return lvl, nil
}

// New builds a logger writing to cfg.Output in cfg.Format.
func New(cfg config.LoggingConfig) (*Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	atom := zap.NewAtomicLevelAt(lvl)

	zc := zap.Config{
		Level:            atom,
		Encoding:         cfg.Format,
		OutputPaths:      []string{cfg.Output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Format == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return &Logger{Logger: l, Level: atom}, nil
}

// Apply updates the level from a reloaded config. Format and output changes
// need a restart.
func (l *Logger) Apply(cfg config.LoggingConfig) error {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	if lvl != l.Level.Level() {
		l.Info("log level changed", zap.Stringer("from", l.Level.Level()), zap.Stringer("to", lvl))
		l.Level.SetLevel(lvl)
	}
	return nil
}
