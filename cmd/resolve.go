package cmd

import (
	"fmt"
	"path/filepath"
)

// resolvePath turns path into an absolute path with every symbolic link
// resolved. The path must exist.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrArgument, path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrArgument, path, err)
	}
	return resolved, nil
}
