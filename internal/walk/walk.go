package walk

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// WalkFunc is called for every entry of a traversal. Returning an error
// stops the walk.
type WalkFunc func(entry Entry) error

// Walk traverses the tree rooted at root with default options, calling fn
// for each entry in pre-order.
func Walk(root string, fn WalkFunc) error {
	return WalkWithOptions(context.Background(), root, fn, WalkOptions{})
}

// WalkWithOptions drives a Walker over root until it is exhausted, ctx is
// done, fn fails, or an error stops it according to opts.ErrorHandling.
//
// Directories that could not be opened are still passed to fn. The depth
// limit always stops the walk, whatever the error handling mode.
func WalkWithOptions(ctx context.Context, root string, fn WalkFunc, opts WalkOptions) error {
	w, err := New(root, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	var walkErrors []error
	stop := func(err error) error {
		return errors.Join(append(walkErrors, err)...)
	}

	var yielded int
	for {
		if err := ctx.Err(); err != nil {
			w.logger.Debug("walk canceled", zap.String("path", w.Path()))
			return stop(err)
		}

		entry, err := w.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if IsFatal(err) || opts.ErrorHandling == ErrorHandlingStop {
				return stop(err)
			}
			if opts.ErrorHandling == ErrorHandlingContinue {
				walkErrors = append(walkErrors, err)
			} else {
				w.logger.Debug("skipping error", zap.Error(err))
			}
			if entry == (Entry{}) {
				continue
			}
		}

		if err := fn(entry); err != nil {
			return stop(fmt.Errorf("path %q: %w", entry.Path, err))
		}

		yielded++
		if opts.Progress != nil && yielded%interval == 0 {
			opts.Progress(w.Stats())
		}
	}

	if opts.Progress != nil {
		opts.Progress(w.Stats())
	}
	return errors.Join(walkErrors...)
}
