// Package testkit builds condition payloads and checks model invariants for
// tests across packages.
package testkit

import (
	"encoding/binary"
	"fmt"

	"l5cond/internal/bytecursor"
	"l5cond/internal/decoder"
	"l5cond/internal/model"
)

// Payload assembles a token stream behind a format header.
type Payload struct {
	w *bytecursor.Writer
}

// NewPayload writes a header for format with zero length bytes.
func NewPayload(format decoder.Format) *Payload {
	w := bytecursor.NewWriter()
	if err := w.Skip(format.HeaderLen()); err != nil {
		panic(err)
	}
	return &Payload{w: w}
}

// Int appends a local int token (big-endian value).
func (p *Payload) Int(v uint32) *Payload {
	p.byteVal(decoder.TagLocalInt)
	p.w.WriteUint32(v, binary.BigEndian)
	return p
}

// Ident appends a local identifier token (little-endian value).
func (p *Payload) Ident(v uint32) *Payload {
	p.byteVal(decoder.TagLocalIdent)
	p.w.WriteUint32(v, binary.LittleEndian)
	return p
}

// Call appends a function token with its padding; args must already be
// complete local tokens, e.g. testkit.Arg(5).
func (p *Payload) Call(id uint32, arity int, args ...[]byte) *Payload {
	p.byteVal(decoder.TagFunction)
	p.w.WriteUint32(id, binary.BigEndian)
	pad := 7
	if arity == 0 {
		pad = 3
	}
	p.w.WriteBytes(make([]byte, pad))
	for _, a := range args {
		p.w.WriteBytes(a)
	}
	return p
}

// Mem appends a memory-reference token; extended adds the two-stage marker.
func (p *Payload) Mem(magic, typeTag uint32, extended bool) *Payload {
	p.byteVal(decoder.TagMemoryRef)
	p.w.WriteUint32(magic, binary.BigEndian)
	p.u24(typeTag)
	if extended {
		p.byteVal(decoder.MarkerExtended)
		p.u24(typeTag)
	}
	return p
}

// Cmp appends a comparator token.
func (p *Payload) Cmp(c model.Comparator) *Payload {
	code, ok := decoder.ComparatorCode(c)
	if !ok {
		panic(fmt.Sprintf("no comparator code for %v", c))
	}
	p.byteVal(code)
	return p
}

// Sep appends a block separator.
func (p *Payload) Sep() *Payload {
	p.byteVal(decoder.TagBlockSeparator)
	return p
}

// Raw appends bytes verbatim.
func (p *Payload) Raw(b ...byte) *Payload {
	p.w.WriteBytes(b)
	return p
}

// Bytes returns the payload.
func (p *Payload) Bytes() []byte {
	return p.w.Bytes()
}

func (p *Payload) byteVal(b byte) {
	if err := p.w.WriteByte(b); err != nil {
		panic(err)
	}
}

func (p *Payload) u24(v uint32) {
	if err := p.w.WriteUint24(v, binary.BigEndian); err != nil {
		panic(err)
	}
}

// Arg encodes a local int token for use as a Call argument.
func Arg(v uint32) []byte {
	w := bytecursor.NewWriter()
	if err := w.WriteByte(decoder.TagLocalInt); err != nil {
		panic(err)
	}
	w.WriteUint32(v, binary.BigEndian)
	return w.Bytes()
}
