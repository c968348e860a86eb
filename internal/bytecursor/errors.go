package bytecursor

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for any read or skip past the end of the buffer.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrInvalidSeek is returned for a seek outside [0, len]. It matches ErrOutOfBounds too.
	ErrInvalidSeek = fmt.Errorf("invalid seek: %w", ErrOutOfBounds)
	// ErrValueRange is returned by the writer when a value does not fit the requested width.
	ErrValueRange = errors.New("value out of range")
)

// Error describes a failed cursor operation.
type Error struct {
	Op   string
	Pos  uint32 // cursor position when the operation started
	Want uint32 // requested width or seek target
	Len  uint32
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at 0x%02X (want %d, len %d): %v", e.Op, e.Pos, e.Want, e.Len, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
