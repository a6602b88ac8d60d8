//go:build linux

package walk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix"
)

// linux_dirent64 offsets (from linux/dirent.h):
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;    // 8 bytes  (offset 0)
//	    off64_t        d_off;    // 8 bytes  (offset 8)
//	    unsigned short d_reclen; // 2 bytes  (offset 16)
//	    unsigned char  d_type;   // 1 byte   (offset 18)
//	    char           d_name[]; // variable (offset 19)
//	};
const (
	direntInoOffset    = 0
	direntReclenOffset = 16
	direntTypeOffset   = 18
	direntNameOffset   = 19
	direntMinSize      = direntNameOffset

	direntBufSize = 8192
)

var errInvalidDirent = errors.New("invalid dirent")

// getdentsDir reads a directory fd with getdents64.
type getdentsDir struct {
	fd   int
	buf  []byte
	data []byte // unparsed part of buf
}

func openDir(path string) (dirReader, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &getdentsDir{fd: fd, buf: make([]byte, direntBufSize)}, nil
	}
}

func (d *getdentsDir) next() (dirent, error) {
	for {
		if len(d.data) == 0 {
			n, err := d.fill()
			if err != nil {
				return dirent{}, err
			}
			if n == 0 {
				return dirent{}, io.EOF
			}
		}

		if len(d.data) < direntMinSize {
			return dirent{}, errInvalidDirent
		}
		reclen := int(binary.NativeEndian.Uint16(d.data[direntReclenOffset:]))
		if reclen < direntMinSize || reclen > len(d.data) {
			return dirent{}, errInvalidDirent
		}

		rec := d.data[:reclen]
		d.data = d.data[reclen:]

		name := rec[direntNameOffset:]
		for i, b := range name {
			if b == 0 {
				name = name[:i]
				break
			}
		}
		if len(name) == 0 {
			continue
		}

		de := dirent{
			name: string(name),
			typ:  typeFromDT(rec[direntTypeOffset]),
			ino:  binary.NativeEndian.Uint64(rec[direntInoOffset:]),
		}
		if de.typ == TypeUnknown && !isDotEntry(de.name) {
			de.typ = d.classify(de.name)
		}
		return de, nil
	}
}

// fill reads the next batch of records into buf.
func (d *getdentsDir) fill() (int, error) {
	for {
		n, err := unix.ReadDirent(d.fd, d.buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("getdents: %w", err)
		}
		if n < 0 {
			n = 0
		}
		d.data = d.buf[:n]
		return n, nil
	}
}

// classify resolves an entry whose d_type is DT_UNKNOWN using
// fstatat(AT_SYMLINK_NOFOLLOW).
func (d *getdentsDir) classify(name string) Type {
	var st unix.Stat_t
	for {
		err := unix.Fstatat(d.fd, name, &st, unix.AT_SYMLINK_NOFOLLOW)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return TypeUnknown
		}
		break
	}

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return TypeDirectory
	case unix.S_IFREG:
		return TypeRegular
	case unix.S_IFLNK:
		return TypeSymlink
	default:
		return TypeOther
	}
}

func (d *getdentsDir) close() error {
	if d.fd < 0 {
		return nil
	}
	// close(2) is not retried on EINTR.
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func typeFromDT(dt byte) Type {
	switch dt {
	case unix.DT_DIR:
		return TypeDirectory
	case unix.DT_REG:
		return TypeRegular
	case unix.DT_LNK:
		return TypeSymlink
	case unix.DT_UNKNOWN:
		return TypeUnknown
	default:
		return TypeOther
	}
}

// inodeOf returns the inode number recorded in info, if any.
func inodeOf(info fs.FileInfo) uint64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Ino
	}
	return 0
}
