package records

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/nasomail/internal/filex"
)

// Store reads and writes one record of type T at a fixed path.
type Store[T any] struct {
	path  string
	codec Codec[T]
}

// New returns a Store for path using codec.
func New[T any](path string, codec Codec[T]) *Store[T] {
	return &Store[T]{path: path, codec: codec}
}

// Path returns the file location of the record.
func (s *Store[T]) Path() string {
	return s.path
}

// Write replaces the record with v. The value is encoded before anything
// touches the disk and lands via rename, so a failed Write leaves the
// previous record (or its absence) intact.
func (s *Store[T]) Write(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := filex.EnsureParentDir(s.path); err != nil {
		return wrap(ErrDir, s.path, err)
	}

	data, err := s.codec.Encode(v)
	if err != nil {
		return wrap(ErrCodec, s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return wrap(ErrFile, s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return wrap(ErrReadWrite, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return wrap(ErrReadWrite, s.path, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return wrap(ErrFile, s.path, err)
	}
	return nil
}

// Read loads the record. ok is false when the file does not exist.
func (s *Store[T]) Read(ctx context.Context) (v T, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return v, false, err
	}

	exists, err := filex.Exists(s.path)
	if err != nil {
		return v, false, wrap(ErrDir, s.path, err)
	}
	if !exists {
		return v, false, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return v, false, wrap(ErrFile, s.path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return v, false, wrap(ErrReadWrite, s.path, err)
	}

	v, err = s.codec.Decode(data)
	if err != nil {
		return v, false, wrap(ErrCodec, s.path, err)
	}
	return v, true, nil
}

// Remove deletes the record. removed is false when there was nothing to delete.
func (s *Store[T]) Remove(ctx context.Context) (removed bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	exists, err := filex.Exists(s.path)
	if err != nil {
		return false, wrap(ErrDir, s.path, err)
	}
	if !exists {
		return false, nil
	}

	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, wrap(ErrFile, s.path, err)
	}
	return true, nil
}

// Exists reports whether the record file is present.
func (s *Store[T]) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := filex.Exists(s.path)
	if err != nil {
		return false, wrap(ErrDir, s.path, err)
	}
	return ok, nil
}
