//go:build !linux

package walk

import (
	"io"
	"io/fs"

	"github.com/karrick/godirwalk"
)

// scannerDir enumerates a directory with godirwalk, which classifies
// entries without following links. Inode numbers are not reported.
type scannerDir struct {
	sc *godirwalk.Scanner
}

func openDir(path string) (dirReader, error) {
	sc, err := godirwalk.NewScanner(path)
	if err != nil {
		return nil, err
	}
	return &scannerDir{sc: sc}, nil
}

func (d *scannerDir) next() (dirent, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return dirent{}, err
		}
		return dirent{}, io.EOF
	}

	de, err := d.sc.Dirent()
	if err != nil {
		return dirent{}, err
	}
	return dirent{name: de.Name(), typ: typeFromMode(de.ModeType())}, nil
}

func (d *scannerDir) close() error {
	return d.sc.Close()
}

func inodeOf(fs.FileInfo) uint64 { return 0 }
