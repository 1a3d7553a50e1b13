// Package filex contains the small filesystem checks shared by the record
// store and the server bootstrap.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether path exists. A missing file is (false, nil); any
// other stat failure is returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureParentDir creates the parent directory of path, but only when it is
// missing, so the common case costs one stat.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	ok, err := Exists(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if ok {
		return nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Touch creates an empty file at path (and its parent directory) when it does
// not exist yet. Existing files are left alone.
func Touch(path string) (created bool, err error) {
	ok, err := Exists(path)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := EnsureParentDir(path); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return false, err
	}
	return true, f.Close()
}
