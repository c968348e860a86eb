// Package encoder is the reverse direction of internal/decoder: generated
// source text back into a condition payload. It is not implemented; every
// entry point reports ErrNotImplemented so callers never receive a payload
// that silently drops conditions.
package encoder

import (
	"errors"
	"fmt"

	"l5cond/internal/decoder"
	"l5cond/internal/dialect"
)

// ErrNotImplemented is returned by every encoding entry point.
var ErrNotImplemented = errors.New("encoding source text to a payload is not implemented")

// Options mirrors the decoder settings the encoder would target.
type Options struct {
	Format decoder.Format
	Lang   dialect.Kind
}

// Encode would turn generated source into payload bytes.
func Encode(source string, opts Options) ([]byte, error) {
	return nil, fmt.Errorf("encode %s payload from %d bytes of %s: %w",
		opts.Format, len(source), opts.Lang, ErrNotImplemented)
}
