package decoder

import (
	"fmt"
	"strings"

	"l5cond/internal/model"
)

// Token tags shared by both formats.
const (
	TagLocalInt       byte = 0x32
	TagLocalIdent     byte = 0x34
	TagFunction       byte = 0x35
	TagMemoryRef      byte = 0x3A
	TagBlockSeparator byte = 0x8F

	// MarkerExtended follows a memory reference when the next condition is a
	// two-stage bit-flag check; a 3-byte payload comes after it.
	MarkerExtended byte = 0x83
)

// comparatorCodes maps comparator tags to operators; 0x70 and 0x79 are
// observed in real payloads but have no known meaning.
var comparatorCodes = map[byte]model.Comparator{
	0x6E: model.Less,
	0x6F: model.Greater,
	0x70: model.Reserved70,
	0x71: model.GreaterEqual,
	0x78: model.Equal,
	0x79: model.Reserved79,
}

// ComparatorCode returns the tag for a comparator, for building payloads.
func ComparatorCode(c model.Comparator) (byte, bool) {
	for code, cmp := range comparatorCodes {
		if cmp == c {
			return code, true
		}
	}
	return 0, false
}

// Format selects the token-stream layout of a payload.
type Format uint8

const (
	// FormatLocal is the layout with function and local-variable operands.
	FormatLocal Format = iota + 1
	// FormatMemory adds memory-reference operands and two-stage bit-flag checks.
	FormatMemory
)

func (f Format) String() string {
	switch f {
	case FormatLocal:
		return "v1"
	case FormatMemory:
		return "v2"
	}
	return "unknown"
}

// ParseFormat converts a CLI/config spelling to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v1", "local":
		return FormatLocal, nil
	case "v2", "memory":
		return FormatMemory, nil
	}
	return 0, fmt.Errorf("invalid payload format: %q (expected: v1|v2)", s)
}

// HeaderLen returns the number of bytes before the first token.
func (f Format) HeaderLen() int {
	spec, err := specFor(f)
	if err != nil {
		return 0
	}
	return spec.headerOffset + 2
}

type tokenHandler func(d *Decoder, tag byte) error

type formatSpec struct {
	format       Format
	headerOffset int
	defaultCmp   model.Comparator
	tokens       map[byte]tokenHandler
	names        map[byte]string
}

// specFor builds the dispatch table of a format.
func specFor(f Format) (formatSpec, error) {
	spec := formatSpec{
		format: f,
		tokens: map[byte]tokenHandler{
			TagFunction:       (*Decoder).readFunctionToken,
			TagLocalInt:       (*Decoder).readLocalToken,
			TagLocalIdent:     (*Decoder).readLocalToken,
			TagBlockSeparator: (*Decoder).readBlockSeparator,
		},
		names: map[byte]string{
			TagFunction:       "function",
			TagLocalInt:       "local-int",
			TagLocalIdent:     "local-ident",
			TagBlockSeparator: "block-separator",
		},
	}
	for code := range comparatorCodes {
		spec.tokens[code] = (*Decoder).readComparator
		spec.names[code] = "comparator"
	}

	switch f {
	case FormatLocal:
		spec.headerOffset = 0x04
		spec.defaultCmp = model.Equal
	case FormatMemory:
		spec.headerOffset = 0x08
		spec.defaultCmp = model.GreaterEqual
		spec.tokens[TagMemoryRef] = (*Decoder).readMemoryRef
		spec.names[TagMemoryRef] = "memory-ref"
	default:
		return formatSpec{}, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	return spec, nil
}
