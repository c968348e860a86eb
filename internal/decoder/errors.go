package decoder

import (
	"errors"
	"fmt"

	"l5cond/internal/bytecursor"
	"l5cond/internal/model"
)

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrUnknownSymbol   = errors.New("unknown memory symbol")
	ErrUnknownFormat   = errors.New("unknown payload format")
	ErrReused          = errors.New("decoder already used")

	ErrArityMismatch = model.ErrArityMismatch
	ErrOutOfBounds   = bytecursor.ErrOutOfBounds
	ErrInvalidSeek   = bytecursor.ErrInvalidSeek
)

// Error is a fatal decode failure at a token.
type Error struct {
	Offset uint32 // offset of the token tag (or of the header)
	Tag    byte
	Token  string // "" for header failures
	Err    error
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("decode header at 0x%02X: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decode %s token 0x%02X at 0x%02X: %v", e.Token, e.Tag, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
