package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// NewProductionLogger creates a JSON logger writing to stderr at the given level
func NewProductionLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = atomicLevel
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build production logger: %w", err)
	}
	return logger, nil
}

// NewDevelopmentLogger creates a human-readable debug logger writing to stderr
func NewDevelopmentLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build development logger: %w", err)
	}
	return logger, nil
}

// NewLoggerFromSettings picks the development logger in debug mode and a leveled production logger otherwise
func NewLoggerFromSettings(level string, debug bool) (*zap.Logger, error) {
	if debug {
		return NewDevelopmentLogger()
	}
	return NewProductionLogger(level)
}
