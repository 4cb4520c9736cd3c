// Package filex holds small filesystem helpers.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNotDir = errors.New("not a directory")

// EnsureDir creates dir, owner-only, if it does not exist and returns its
// absolute path. Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotDir)
	}
	return abs, nil
}
