package records

import (
	"errors"
	"fmt"
)

var (
	ErrDir       = errors.New("record directory error")
	ErrFile      = errors.New("record file error")
	ErrCodec     = errors.New("record codec error")
	ErrReadWrite = errors.New("record read/write error")
)

func wrap(kind error, path string, err error) error {
	return fmt.Errorf("%w: %s: %w", kind, path, err)
}
