package walk

import (
	"io/fs"
	"time"

	"github.com/TFMV/fw/internal/pathbuf"
)

// Type classifies a traversal entry.
type Type uint8

const (
	TypeUnknown   Type = iota // Could not be classified
	TypeDirectory             // Directory
	TypeRegular               // Regular file
	TypeSymlink               // Symbolic link, never descended into
	TypeOther                 // FIFO, socket, device, ...
)

func (t Type) String() string {
	switch t {
	case TypeDirectory:
		return "directory"
	case TypeRegular:
		return "file"
	case TypeSymlink:
		return "symlink"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// typeFromMode maps the type bits of a file mode to a Type.
func typeFromMode(mode fs.FileMode) Type {
	switch {
	case mode.IsDir():
		return TypeDirectory
	case mode.IsRegular():
		return TypeRegular
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	default:
		return TypeOther
	}
}

// Entry is a single node produced by a Walker. It owns its Path and stays
// valid after the walker moves on.
type Entry struct {
	Path  string // Normalized path, relative to the root as given
	Type  Type
	Depth int    // Ancestors between the entry and the root; the root is 0
	Inode uint64 // Zero when the platform does not report one
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Type == TypeDirectory }

// Name returns the last segment of the entry's path.
func (e Entry) Name() string { return pathbuf.Base(e.Path) }

// Stats holds traversal counters maintained by a Walker.
type Stats struct {
	Entries     int64         // Entries yielded, the root included
	Dirs        int64         // Directories yielded
	Files       int64         // Regular files yielded
	Symlinks    int64         // Symbolic links yielded
	Other       int64         // Other file types yielded
	Unknown     int64         // Entries that could not be classified
	Errors      int64         // Errors returned from Next
	MaxDepth    int64         // Deepest entry seen
	ElapsedTime time.Duration // Time since the first call to Next
}

func (s *Stats) count(e Entry) {
	s.Entries++
	switch e.Type {
	case TypeDirectory:
		s.Dirs++
	case TypeRegular:
		s.Files++
	case TypeSymlink:
		s.Symlinks++
	case TypeOther:
		s.Other++
	default:
		s.Unknown++
	}
	if d := int64(e.Depth); d > s.MaxDepth {
		s.MaxDepth = d
	}
}
