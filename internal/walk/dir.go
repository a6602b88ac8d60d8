package walk

// Directory backend contract.
//
// The walker is written against openDir and dirReader, provided per platform
// by build-tagged files:
//   - Linux:  dir_linux.go (getdents64 on an O_DIRECTORY fd)
//   - Others: dir_other.go (godirwalk.Scanner)
//
// Backends may or may not report the "." and ".." pseudo-entries; the walker
// skips them. A backend resolves DT_UNKNOWN with an lstat of its own and
// reports TypeUnknown only when that fails too.

// dirent is one raw child of an open directory.
type dirent struct {
	name string
	typ  Type
	ino  uint64
}

// dirReader is an open directory handle owned by exactly one frame.
type dirReader interface {
	// next returns the following child, or io.EOF once the directory is
	// exhausted.
	next() (dirent, error)
	close() error
}

var _ func(string) (dirReader, error) = openDir

func isDotEntry(name string) bool {
	return name == "." || name == ".."
}
