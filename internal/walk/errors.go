package walk

import (
	"errors"
	"fmt"
)

// MaxDepth is the maximum number of directories open at once. A tree nested
// deeper than this is treated as a cycle or a pathological tree.
const MaxDepth = 64

var (
	// ErrDepthExceeded aborts a traversal nested deeper than MaxDepth.
	ErrDepthExceeded = errors.New("maximum directory depth exceeded")

	// ErrFollowUnsupported is returned by New for SymlinkFollow. Following
	// links needs cycle detection that the walker does not have yet.
	ErrFollowUnsupported = errors.New("following symbolic links is not supported")
)

// Error records a failed traversal step and the path that caused it.
//
// Op is one of:
//
//	"stat"    the root could not be inspected
//	"open"    a directory could not be opened; its subtree is skipped
//	"read"    reading a directory failed; the rest of it is skipped
//	"close"   releasing a directory handle failed
//	"push"    the path would exceed the path buffer capacity
//	"descend" the directory is nested deeper than MaxDepth
type Error struct {
	Op    string
	Path  string
	Depth int
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsFatal reports whether err ends the traversal it came from.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDepthExceeded)
}
