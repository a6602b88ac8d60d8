package walk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchEvent represents a filesystem event type
type WatchEvent string

// Watch event types
const (
	EventCreate WatchEvent = "create"
	EventModify WatchEvent = "modify"
	EventDelete WatchEvent = "delete"
	EventRename WatchEvent = "rename"
	EventChmod  WatchEvent = "chmod"
)

// WatchOptions defines options for watching a tree
type WatchOptions struct {
	// Events to report. If empty, all events are reported.
	Events []WatchEvent

	// Timeout duration (0 means no timeout)
	Timeout time.Duration

	// Options for the walks that register directories
	Walk WalkOptions
}

// WatchMessage describes one filesystem event
type WatchMessage struct {
	Path  string     // Path as reported by the watcher or the walker
	Event WatchEvent // Event type
	Type  Type       // Entry type, TypeUnknown for deleted paths
	Time  time.Time  // When the event was received
}

// WatchResult is passed to a WatchHandler; exactly one field is set
type WatchResult struct {
	Message WatchMessage
	Error   error
}

// WatchHandler processes watch results. An error returned from the handler
// stops the watch.
type WatchHandler func(ctx context.Context, result WatchResult) error

var eventOps = []struct {
	op    fsnotify.Op
	event WatchEvent
}{
	{fsnotify.Create, EventCreate},
	{fsnotify.Write, EventModify},
	{fsnotify.Remove, EventDelete},
	{fsnotify.Rename, EventRename},
	{fsnotify.Chmod, EventChmod},
}

// Watch registers every directory under root and reports events until ctx
// is done or the timeout expires. A directory created while watching is
// walked with its own Walker: its directories are registered and every
// entry inside it is reported as EventCreate.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	if handler == nil {
		return errors.New("watch: nil handler")
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	wanted := make(map[WatchEvent]bool)
	for _, e := range opts.Events {
		wanted[e] = true
	}

	logger := opts.Walk.Logger
	if logger == nil {
		logger = createLogger(opts.Walk.LogLevel)
		defer logger.Sync()
	}
	walkOpts := opts.Walk
	walkOpts.Logger = logger

	if err := addTree(ctx, watcher, root, walkOpts, nil); err != nil {
		return fmt.Errorf("error watching %s: %w", root, err)
	}
	logger.Debug("watching", zap.String("root", root))

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if herr := handler(ctx, WatchResult{Error: fmt.Errorf("watcher error: %w", err)}); herr != nil {
				return herr
			}

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			for _, m := range eventOps {
				if !ev.Has(m.op) || (len(wanted) > 0 && !wanted[m.event]) {
					continue
				}
				if err := handleEvent(ctx, watcher, ev.Name, m.event, walkOpts, handler); err != nil {
					return err
				}
				break
			}
		}
	}
}

func handleEvent(ctx context.Context, watcher *fsnotify.Watcher, path string, event WatchEvent, opts WalkOptions, handler WatchHandler) error {
	msg := WatchMessage{Path: path, Event: event, Time: time.Now()}
	if event == EventDelete || event == EventRename {
		return handler(ctx, WatchResult{Message: msg})
	}

	info, err := os.Lstat(path)
	if err != nil {
		// Gone before we looked; report it and keep going.
		return handler(ctx, WatchResult{Error: fmt.Errorf("error getting file info for %s: %w", path, err)})
	}
	msg.Type = typeFromMode(info.Mode())
	if err := handler(ctx, WatchResult{Message: msg}); err != nil {
		return err
	}

	if event != EventCreate || msg.Type != TypeDirectory {
		return nil
	}
	return addTree(ctx, watcher, path, opts, func(entry Entry) error {
		if entry.Depth == 0 {
			return nil
		}
		return handler(ctx, WatchResult{Message: WatchMessage{
			Path:  entry.Path,
			Event: EventCreate,
			Type:  entry.Type,
			Time:  time.Now(),
		}})
	})
}

// addTree walks root and adds every directory to the watcher. Per-entry
// walk errors are logged and skipped; fn, if set, sees every entry.
func addTree(ctx context.Context, watcher *fsnotify.Watcher, root string, opts WalkOptions, fn WalkFunc) error {
	opts.ErrorHandling = ErrorHandlingSkip
	return WalkWithOptions(ctx, root, func(entry Entry) error {
		if entry.IsDir() {
			if err := watcher.Add(entry.Path); err != nil {
				opts.Logger.Warn("error watching directory", zap.String("path", entry.Path), zap.Error(err))
			}
		}
		if fn != nil {
			return fn(entry)
		}
		return nil
	}, opts)
}
