package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging owns the application logger. The terminal belongs to the
// frontend, so logs go to a file or nowhere.
type Logging struct {
	level  zap.AtomicLevel
	logger *zap.Logger
}

// NewLogging builds a console-encoded logger at level writing to path.
// An empty path discards all output.
func NewLogging(level, path string) (*Logging, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, NewOperationError("logging", level, err)
	}
	atomic := zap.NewAtomicLevelAt(lvl)
	if path == "" {
		return &Logging{level: atomic, logger: zap.NewNop()}, nil
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg := zap.Config{
		Level:             atomic,
		Encoding:          "console",
		EncoderConfig:     enc,
		OutputPaths:       []string{path},
		ErrorOutputPaths:  []string{path},
		DisableStacktrace: true,
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, NewOperationError("logging", path, err)
	}
	return &Logging{level: atomic, logger: logger.Named("keyseq")}, nil
}

// Sugar returns the application logger.
func (l *Logging) Sugar() *zap.SugaredLogger {
	return l.logger.Sugar()
}

// Level returns the current level.
func (l *Logging) Level() zapcore.Level {
	return l.level.Level()
}

// SetLevel changes the level of every logger derived from l.
func (l *Logging) SetLevel(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(lvl)
	return nil
}

// Sync flushes buffered log entries.
func (l *Logging) Sync() error {
	return l.logger.Sync()
}
