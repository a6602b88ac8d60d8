package walk

import (
	"context"
	"time"

	internal "github.com/TFMV/fw/internal/walk"
	"go.uber.org/zap"
)

// Re-export all the types and constants from the internal package
type (
	// Walker produces the entries of a tree one at a time.
	Walker = internal.Walker

	// Entry is a single node produced by a Walker.
	Entry = internal.Entry

	// Type classifies an entry.
	Type = internal.Type

	// Error records a failed traversal step and the path that caused it.
	Error = internal.Error

	// Stats holds traversal counters maintained by a Walker.
	Stats = internal.Stats

	// WalkOptions configures a Walker and WalkWithOptions.
	WalkOptions = internal.WalkOptions

	// WalkFunc is called for every entry of a traversal.
	WalkFunc = internal.WalkFunc

	// ErrorHandling defines how errors are handled during traversal.
	ErrorHandling = internal.ErrorHandling

	// SymlinkHandling defines how symbolic links are processed.
	SymlinkHandling = internal.SymlinkHandling

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// ProgressFn is called with traversal statistics.
	ProgressFn = internal.ProgressFn

	// Re-export watch types
	WatchEvent   = internal.WatchEvent
	WatchOptions = internal.WatchOptions
	WatchMessage = internal.WatchMessage
	WatchResult  = internal.WatchResult
	WatchHandler = internal.WatchHandler
)

// Re-export all the constants
const (
	// Entry types
	TypeUnknown   = internal.TypeUnknown
	TypeDirectory = internal.TypeDirectory
	TypeRegular   = internal.TypeRegular
	TypeSymlink   = internal.TypeSymlink
	TypeOther     = internal.TypeOther

	// Error handling modes
	ErrorHandlingContinue = internal.ErrorHandlingContinue
	ErrorHandlingStop     = internal.ErrorHandlingStop
	ErrorHandlingSkip     = internal.ErrorHandlingSkip

	// Symlink handling modes
	SymlinkReport = internal.SymlinkReport
	SymlinkIgnore = internal.SymlinkIgnore
	SymlinkFollow = internal.SymlinkFollow

	// Log levels
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	// Watch event constants
	EventCreate = internal.EventCreate
	EventModify = internal.EventModify
	EventDelete = internal.EventDelete
	EventRename = internal.EventRename
	EventChmod  = internal.EventChmod

	// MaxDepth is the maximum number of directories open at once.
	MaxDepth = internal.MaxDepth
)

// Re-export the sentinel errors
var (
	ErrDepthExceeded     = internal.ErrDepthExceeded
	ErrFollowUnsupported = internal.ErrFollowUnsupported
)

// New returns a Walker positioned before root.
func New(root string, opts WalkOptions) (*Walker, error) {
	return internal.New(root, opts)
}

// NewLogger returns a zap logger for the given log level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}

// IsFatal reports whether err ends the traversal it came from.
func IsFatal(err error) bool {
	return internal.IsFatal(err)
}

// Walk traverses the tree rooted at root in pre-order, calling fn for each entry.
func Walk(root string, fn WalkFunc) error {
	return internal.Walk(root, fn)
}

// WalkWithOptions traverses the tree with the given options.
func WalkWithOptions(ctx context.Context, root string, fn WalkFunc, opts WalkOptions) error {
	return internal.WalkWithOptions(ctx, root, fn, opts)
}

// Watch monitors a tree for filesystem changes
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	return internal.Watch(ctx, root, opts, handler)
}

// MiddlewareFunc wraps a WalkFunc.
type MiddlewareFunc func(next WalkFunc) WalkFunc

// Chain applies middlewares to fn so that the first one runs outermost.
func Chain(fn WalkFunc, middlewares ...MiddlewareFunc) WalkFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		fn = middlewares[i](fn)
	}
	return fn
}

// LoggingMiddleware creates a middleware that logs every entry at debug level.
func LoggingMiddleware(logger *zap.Logger) MiddlewareFunc {
	return func(next WalkFunc) WalkFunc {
		return func(entry Entry) error {
			logger.Debug("Visiting entry",
				zap.String("path", entry.Path),
				zap.Stringer("type", entry.Type),
				zap.Int("depth", entry.Depth),
				zap.Uint64("inode", entry.Inode),
			)
			err := next(entry)
			if err != nil {
				logger.Error("Error processing entry",
					zap.String("path", entry.Path),
					zap.Error(err),
				)
			}
			return err
		}
	}
}

// TimingMiddleware creates a middleware that reports entries whose callback
// takes longer than threshold.
func TimingMiddleware(threshold time.Duration, report func(entry Entry, took time.Duration)) MiddlewareFunc {
	return func(next WalkFunc) WalkFunc {
		return func(entry Entry) error {
			start := time.Now()
			err := next(entry)
			if took := time.Since(start); took > threshold {
				report(entry, took)
			}
			return err
		}
	}
}
