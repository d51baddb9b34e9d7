package storage

import (
	"errors"
	"fmt"
	"io"
)

// ErrFileTooLarge matches every ReachLimitError
var ErrFileTooLarge = errors.New("file too large")

// ReachLimitError is returned once a reader yields more than MaxBytes
type ReachLimitError struct {
	MaxBytes int64
}

func (e *ReachLimitError) Error() string {
	return fmt.Sprintf("reach limit of %s", FormatBytes(e.MaxBytes))
}

func (e *ReachLimitError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// NewMaxSizeReader wraps r so that reading past maxSize fails with ReachLimitError
func NewMaxSizeReader(r io.Reader, maxSize int64) io.Reader {
	return &maxSizeReader{reader: r, max: maxSize, left: maxSize}
}

type maxSizeReader struct {
	reader io.Reader
	max    int64
	left   int64
}

func (r *maxSizeReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	// one byte past the budget is enough to detect overflow
	if int64(len(p)) > r.left+1 {
		p = p[:r.left+1]
	}
	n, err := r.reader.Read(p)
	if int64(n) <= r.left {
		r.left -= int64(n)
		return n, err
	}

	n = int(r.left)
	r.left = 0
	return n, &ReachLimitError{MaxBytes: r.max}
}

// FormatBytes renders a byte count with a binary unit
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d bytes", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit && exp < 3; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGT"[exp])
}
