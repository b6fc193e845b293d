package format

import "errors"

var (
	// ErrTruncated indicates the range lacked the bytes required for a
	// header or payload read.
	ErrTruncated = errors.New("format: truncated box")
	// ErrInvalidSize indicates a box declared a size smaller than its own
	// header.
	ErrInvalidSize = errors.New("format: invalid box size")
	// ErrOutOfBounds indicates a box extends past the end of its enclosing
	// range.
	ErrOutOfBounds = errors.New("format: box exceeds enclosing range")
	// ErrTrailingBytes indicates a range was not exactly consumed by the
	// boxes inside it.
	ErrTrailingBytes = errors.New("format: trailing bytes in range")
	// ErrDepthExceeded indicates container nesting passed the recursion
	// ceiling.
	ErrDepthExceeded = errors.New("format: box nesting too deep")
	// ErrNotFound indicates a requested box was missing.
	ErrNotFound = errors.New("format: box not found")
)
