// Package pathbuf maintains a single normalized filesystem path that can be
// extended and shortened one segment at a time.
//
// A Buffer never ends with a separator unless it is exactly "/", never holds
// a "." segment, and holds ".." only where it could not be resolved against
// a concrete segment (the leading segments of a relative path such as
// "../../a"). Normalization is purely lexical; the filesystem is never
// consulted.
package pathbuf

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sep is the path separator understood by the buffer.
const Sep = '/'

// MaxLen is the default capacity of a Buffer, matching Linux PATH_MAX.
const MaxLen = 4096

// ErrCapacity is returned when a push would grow the path past its limit.
var ErrCapacity = errors.New("path exceeds buffer capacity")

// Buffer is a capacity-bounded normalized path. The zero value is an empty
// buffer with a limit of MaxLen.
type Buffer struct {
	buf   []byte
	limit int
}

// New returns an empty buffer with a limit of MaxLen.
func New() *Buffer {
	return NewSize(MaxLen)
}

// NewSize returns an empty buffer that holds at most limit bytes.
// A non-positive limit selects MaxLen.
func NewSize(limit int) *Buffer {
	if limit <= 0 {
		limit = MaxLen
	}
	return &Buffer{buf: make([]byte, 0, min(limit, MaxLen)), limit: limit}
}

// Limit reports the maximum length of the path in bytes.
func (b *Buffer) Limit() int {
	if b.limit <= 0 {
		return MaxLen
	}
	return b.limit
}

// Len reports the current length of the path in bytes.
func (b *Buffer) Len() int { return len(b.buf) }

// IsEmpty reports whether the buffer holds no path at all.
func (b *Buffer) IsEmpty() bool { return len(b.buf) == 0 }

// IsRoot reports whether the buffer is exactly "/".
func (b *Buffer) IsRoot() bool {
	return len(b.buf) == 1 && b.buf[0] == Sep
}

// String returns a copy of the path. An empty buffer reads as ".".
func (b *Buffer) String() string {
	if len(b.buf) == 0 {
		return "."
	}
	return string(b.buf)
}

// Reset empties the buffer, keeping its storage and limit.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Push appends path to the buffer segment by segment, resolving "." and
// ".." lexically. A leading separator only takes effect on an empty buffer,
// where it makes the path absolute; otherwise path is treated as relative to
// the current content.
//
// If the result would exceed the limit, Push returns an error wrapping
// ErrCapacity and the buffer keeps the content it had before the call.
func (b *Buffer) Push(path string) error {
	n := len(b.buf)
	// A ".." segment truncates before later appends overwrite the old
	// bytes, so only then is a full copy needed to roll back.
	var saved []byte
	if strings.Contains(path, "..") {
		saved = bytes.Clone(b.buf)
	}

	if err := b.push(path); err != nil {
		if saved != nil {
			b.buf = append(b.buf[:0], saved...)
		} else {
			b.buf = b.buf[:n]
		}
		return err
	}
	return nil
}

// Set replaces the content of the buffer with path. On error the previous
// content is kept.
func (b *Buffer) Set(path string) error {
	saved := bytes.Clone(b.buf)
	b.Reset()
	if err := b.push(path); err != nil {
		b.buf = append(b.buf[:0], saved...)
		return err
	}
	return nil
}

// Pop removes the last segment and returns it. It returns "" when the
// buffer is empty or is the root. Pop exactly undoes a successful Push of a
// single plain segment.
func (b *Buffer) Pop() string {
	if len(b.buf) == 0 || b.IsRoot() {
		return ""
	}

	i := bytes.LastIndexByte(b.buf, Sep)
	seg := string(b.buf[i+1:])
	switch {
	case i < 0:
		b.buf = b.buf[:0]
	case i == 0:
		b.buf = b.buf[:1]
	default:
		b.buf = b.buf[:i]
	}
	return seg
}

// Parent returns the lexical parent of the path, as if ".." had been
// pushed. The buffer itself is not modified.
func (b *Buffer) Parent() string {
	scratch := Buffer{
		buf:   append(make([]byte, 0, len(b.buf)+3), b.buf...),
		limit: math.MaxInt,
	}
	// Cannot fail: the scratch buffer is unbounded.
	_ = scratch.appendNorm("..")
	return scratch.String()
}

// Basename returns the last segment of the path. See Base.
func (b *Buffer) Basename() string {
	return Base(string(b.buf))
}

// Dirname returns everything before the last segment of the path. See Dir.
func (b *Buffer) Dirname() string {
	return Dir(string(b.buf))
}

func (b *Buffer) push(path string) error {
	if len(b.buf) == 0 && strings.HasPrefix(path, "/") {
		b.buf = append(b.buf, Sep)
	}

	for _, seg := range strings.Split(path, "/") {
		if err := b.appendNorm(seg); err != nil {
			return err
		}
	}
	return nil
}

// appendNorm applies one segment to the buffer.
func (b *Buffer) appendNorm(seg string) error {
	switch seg {
	case "", ".":
		return nil
	case "..":
		if b.IsRoot() {
			return nil
		}
		i := bytes.LastIndexByte(b.buf, Sep) + 1
		if len(b.buf) == 0 || string(b.buf[i:]) == ".." {
			return b.appendLit("..")
		}
		// i == 1 means the only separator is the leading one: keep it.
		if i <= 1 {
			b.buf = b.buf[:i]
		} else {
			b.buf = b.buf[:i-1]
		}
		return nil
	default:
		return b.appendLit(seg)
	}
}

func (b *Buffer) appendLit(seg string) error {
	sep := len(b.buf) > 0 && !b.IsRoot()
	need := len(b.buf) + len(seg)
	if sep {
		need++
	}
	if need > b.Limit() {
		return capacityError(need, b.Limit())
	}

	if sep {
		b.buf = append(b.buf, Sep)
	}
	b.buf = append(b.buf, seg...)
	return nil
}

func capacityError(need, limit int) error {
	return fmt.Errorf("%w: need %d bytes, limit is %d", ErrCapacity, need, limit)
}

// Base returns the last segment of path after trailing separators are
// trimmed. It returns "." for an empty path and "/" for a path made only of
// separators.
func Base(path string) string {
	if path == "" {
		return "."
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	if i := strings.LastIndexByte(path, Sep); i >= 0 {
		path = path[i+1:]
	}
	return path
}

// Dir returns everything before the last segment of path, without trailing
// separators. It returns "." for an empty path or a single relative segment
// and "/" when only separators remain.
func Dir(path string) string {
	if path == "" {
		return "."
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}

	i := strings.LastIndexByte(path, Sep)
	if i < 0 {
		return "."
	}
	path = strings.TrimRight(path[:i], "/")
	if path == "" {
		return "/"
	}
	return path
}
