package walk

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// --------------------------------------------------------------------------
// Configuration types
// --------------------------------------------------------------------------

// ErrorHandling defines how WalkWithOptions reacts to per-entry errors.
type ErrorHandling int

const (
	ErrorHandlingContinue ErrorHandling = iota // Collect errors and keep walking
	ErrorHandlingStop                          // Stop on first error
	ErrorHandlingSkip                          // Drop errors and keep walking
)

// SymlinkHandling defines how symbolic links found inside the tree are
// processed.
type SymlinkHandling int

const (
	SymlinkReport SymlinkHandling = iota // Yield links but don't follow
	SymlinkIgnore                        // Don't yield links at all
	SymlinkFollow                        // Follow links (not supported yet)
)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// DefaultProgressInterval is the number of entries between progress
// callbacks when WalkOptions.ProgressInterval is not set.
const DefaultProgressInterval = 1000

// ProgressFn is called with a snapshot of traversal statistics.
type ProgressFn func(stats Stats)

// WalkOptions configures a Walker and the WalkWithOptions driver.
type WalkOptions struct {
	ErrorHandling    ErrorHandling
	SymlinkHandling  SymlinkHandling
	Progress         ProgressFn
	ProgressInterval int         // Entries between progress callbacks
	Logger           *zap.Logger // Built from LogLevel when nil
	LogLevel         LogLevel
	PathLimit        int // Maximum path length, pathbuf.MaxLen when zero
}

// createLogger creates a zap logger with the specified log level.
func createLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewLogger returns the logger a Walker builds for level when
// WalkOptions.Logger is nil.
func NewLogger(level LogLevel) *zap.Logger {
	return createLogger(level)
}
