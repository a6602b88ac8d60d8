// Package walk implements a non-recursive, pre-order filesystem walker.
//
// A Walker keeps one normalized path buffer and a stack of open directory
// frames. Each call to Next reads a single child from the directory on top
// of the stack, so a traversal can be paused, resumed or abandoned at any
// entry. The buffer always spells the chain of currently open directories;
// leaf paths are appended only long enough to be copied into an Entry.
//
// Errors on individual subtrees (open, read, path capacity) are returned
// from Next as *Error values and the walker stays usable: calling Next again
// continues with the next sibling. ErrDepthExceeded is the only error that
// ends a traversal.
package walk

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TFMV/fw/internal/dirstack"
	"github.com/TFMV/fw/internal/pathbuf"
)

type state int

const (
	stateStart     state = iota // root not yet inspected
	stateIterating              // reading from the top frame
	stateDone                   // stack empty, nothing pending
)

// frame is an open directory being enumerated.
type frame struct {
	dir   dirReader
	depth int
	path  string // path of dir at the time it was opened
}

// Walker produces the entries of a tree one at a time. A Walker is not safe
// for concurrent use, but distinct Walkers share no state.
type Walker struct {
	opts  WalkOptions
	root  string // normalized
	path  *pathbuf.Buffer
	stack dirstack.Stack[frame]
	state state
	stats Stats
	start time.Time

	logger     *zap.Logger
	ownsLogger bool

	// Filesystem primitives, replaced in tests.
	open func(path string) (dirReader, error)
	stat func(path string) (fs.FileInfo, error)
}

// New returns a Walker positioned before root. The first call to Next
// yields root itself.
func New(root string, opts WalkOptions) (*Walker, error) {
	if opts.SymlinkHandling == SymlinkFollow {
		return nil, ErrFollowUnsupported
	}

	w := &Walker{
		opts: opts,
		path: pathbuf.NewSize(opts.PathLimit),
		open: openDir,
		stat: os.Stat,
	}
	if err := w.path.Set(root); err != nil {
		return nil, &Error{Op: "push", Path: root, Err: err}
	}
	w.root = w.path.String()

	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel)
		w.ownsLogger = true
	}
	w.logger = logger.With(
		zap.String("walk_id", uuid.NewString()),
		zap.String("root", w.root),
	)
	return w, nil
}

// Root returns the normalized root path.
func (w *Walker) Root() string { return w.root }

// Path returns the path of the directory currently being read.
func (w *Walker) Path() string { return w.path.String() }

// Depth returns the number of open directories.
func (w *Walker) Depth() int { return w.stack.Len() }

// Stats returns a snapshot of the traversal counters.
func (w *Walker) Stats() Stats {
	s := w.stats
	if !w.start.IsZero() && w.state != stateDone {
		s.ElapsedTime = time.Since(w.start)
	}
	return s
}

// Next advances the traversal and returns the next entry in pre-order.
// It returns io.EOF once the tree is exhausted.
//
// Any other error is an *Error. For an "open" error the returned Entry is
// the directory that could not be entered; otherwise the Entry is zero.
// Unless the error is fatal (see IsFatal), the next call picks up with the
// following sibling.
func (w *Walker) Next() (Entry, error) {
	switch w.state {
	case stateDone:
		return Entry{}, io.EOF
	case stateStart:
		w.state = stateIterating
		w.start = time.Now()
		w.logger.Debug("starting walk")
		return w.visitRoot()
	}

	for !w.stack.IsEmpty() {
		top := w.stack.Peek()

		de, err := top.dir.next()
		if errors.Is(err, io.EOF) {
			if err := w.popFrame(); err != nil {
				return Entry{}, err
			}
			continue
		}
		if err != nil {
			rerr := w.fail("read", top.path, top.depth, err)
			if cerr := w.popFrame(); cerr != nil {
				return Entry{}, errors.Join(rerr, cerr)
			}
			return Entry{}, rerr
		}

		if isDotEntry(de.name) {
			continue
		}
		if de.typ == TypeSymlink && w.opts.SymlinkHandling == SymlinkIgnore {
			continue
		}
		return w.visitChild(top, de)
	}

	w.finish()
	return Entry{}, io.EOF
}

// visitRoot inspects the root, following a link if the root is one.
func (w *Walker) visitRoot() (Entry, error) {
	p := w.path.String()
	info, err := w.stat(p)
	if err != nil {
		defer w.finish()
		return Entry{}, w.fail("stat", p, 0, err)
	}

	entry := Entry{Path: p, Type: typeFromMode(info.Mode()), Inode: inodeOf(info)}
	w.stats.count(entry)
	if !entry.IsDir() {
		return entry, nil
	}

	dir, err := w.open(p)
	if err != nil {
		defer w.finish()
		return entry, w.fail("open", p, 0, err)
	}
	w.pushFrame(frame{dir: dir, depth: 0, path: p})
	return entry, nil
}

// visitChild appends a child of top to the path buffer, yields it and, for
// a directory, opens it as the new top frame.
func (w *Walker) visitChild(top frame, de dirent) (Entry, error) {
	depth := top.depth + 1
	if err := w.path.Push(de.name); err != nil {
		return Entry{}, w.fail("push", joinName(top.path, de.name), depth, err)
	}

	entry := Entry{Path: w.path.String(), Type: de.typ, Depth: depth, Inode: de.ino}
	if !entry.IsDir() {
		w.path.Pop()
		w.stats.count(entry)
		return entry, nil
	}

	if w.stack.Len() >= MaxDepth {
		w.path.Pop()
		err := w.fail("descend", entry.Path, depth, ErrDepthExceeded)
		w.abort()
		return Entry{}, err
	}

	w.stats.count(entry)
	dir, err := w.open(entry.Path)
	if err != nil {
		w.path.Pop()
		return entry, w.fail("open", entry.Path, depth, err)
	}
	// The name stays in the buffer: it is now the open directory's path.
	w.pushFrame(frame{dir: dir, depth: depth, path: entry.Path})
	return entry, nil
}

func (w *Walker) pushFrame(f frame) {
	w.stack.Push(f)
	w.logger.Debug("enter directory", zap.String("path", f.path), zap.Int("depth", f.depth))
}

// popFrame closes the top frame and retracts its segment from the path
// buffer. The root frame's path is left in place.
func (w *Walker) popFrame() error {
	f, ok := w.stack.Pop()
	if !ok {
		return nil
	}
	if f.depth > 0 {
		w.path.Pop()
	}
	w.logger.Debug("leave directory", zap.String("path", f.path), zap.Int("depth", f.depth))

	if err := f.dir.close(); err != nil {
		return w.fail("close", f.path, f.depth, err)
	}
	return nil
}

func (w *Walker) fail(op, path string, depth int, err error) error {
	w.stats.Errors++
	w.logger.Warn("walk error",
		zap.String("op", op),
		zap.String("path", path),
		zap.Int("depth", depth),
		zap.Error(err),
	)
	return &Error{Op: op, Path: path, Depth: depth, Err: err}
}

// abort releases every open frame and ends the traversal.
func (w *Walker) abort() error {
	var errs []error
	for !w.stack.IsEmpty() {
		if err := w.popFrame(); err != nil {
			errs = append(errs, err)
		}
	}
	w.finish()
	return errors.Join(errs...)
}

func (w *Walker) finish() {
	if w.state == stateDone {
		return
	}
	w.state = stateDone
	if !w.start.IsZero() {
		w.stats.ElapsedTime = time.Since(w.start)
	}
	w.logger.Debug("walk finished",
		zap.Int64("entries", w.stats.Entries),
		zap.Int64("errors", w.stats.Errors),
		zap.Duration("elapsed", w.stats.ElapsedTime),
	)
	if w.ownsLogger {
		_ = w.logger.Sync()
	}
}

// Close releases every directory handle still open. Calling Next after
// Close returns io.EOF. Close is safe to call more than once.
func (w *Walker) Close() error {
	return w.abort()
}

// joinName spells the path a child would have had, for error reports.
func joinName(dir, name string) string {
	switch dir {
	case ".":
		return name
	case "/":
		return "/" + name
	default:
		return dir + "/" + name
	}
}
