package bytecursor

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
)

// Reader is a bounds-checked sequential view over an immutable byte buffer.
// Reads never grow the buffer; anything past the end fails with ErrOutOfBounds.
type Reader struct {
	data []byte
	off  uint32
	size uint32
}

// NewReader creates a reader positioned at offset 0.
func NewReader(data []byte) *Reader {
	size, err := safecast.Conv[uint32](len(data))
	if err != nil {
		panic(fmt.Errorf("len buffer overflow: %w", err))
	}
	return &Reader{data: data, size: size}
}

// Pos returns the current offset.
func (r *Reader) Pos() uint32 {
	return r.off
}

// Len returns the buffer length.
func (r *Reader) Len() uint32 {
	return r.size
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() uint32 {
	return r.size - r.off
}

// EOF reports whether every byte has been consumed.
func (r *Reader) EOF() bool {
	return r.off >= r.size
}

func (r *Reader) take(op string, n uint32) ([]byte, error) {
	if n > r.Remaining() {
		return nil, &Error{Op: op, Pos: r.off, Want: n, Len: r.size, Err: ErrOutOfBounds}
	}
	chunk := r.data[r.off : r.off+n]
	r.off += n
	return chunk, nil
}

// ReadByte consumes one byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.take("read byte", 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.EOF() {
		return 0, &Error{Op: "peek byte", Pos: r.off, Want: 1, Len: r.size, Err: ErrOutOfBounds}
	}
	return r.data[r.off], nil
}

// ReadBytes consumes n bytes. The returned slice aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	want, err := safecast.Conv[uint32](n)
	if err != nil {
		return nil, &Error{Op: "read bytes", Pos: r.off, Len: r.size, Err: ErrOutOfBounds}
	}
	return r.take("read bytes", want)
}

// ReadUint24 consumes a 3-byte unsigned integer in the given byte order.
func (r *Reader) ReadUint24(order binary.ByteOrder) (uint32, error) {
	b, err := r.take("read uint24", 3)
	if err != nil {
		return 0, err
	}
	var scratch [4]byte
	if lowByteFirst(order) {
		copy(scratch[:3], b)
	} else {
		copy(scratch[1:], b)
	}
	return order.Uint32(scratch[:]), nil
}

// lowByteFirst reports whether order stores the least significant byte
// first; binary.NativeEndian resolves to one of the two here.
func lowByteFirst(order binary.ByteOrder) bool {
	var buf [4]byte
	order.PutUint32(buf[:], 1)
	return buf[0] == 1
}

// ReadUint32 consumes a 4-byte unsigned integer in the given byte order.
func (r *Reader) ReadUint32(order binary.ByteOrder) (uint32, error) {
	b, err := r.take("read uint32", 4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Op = "skip"
		}
		return err
	}
	return nil
}

// Seek moves the cursor to an absolute position in [0, Len].
func (r *Reader) Seek(pos int) error {
	p, err := safecast.Conv[uint32](pos)
	if err != nil || p > r.size {
		return &Error{Op: "seek", Pos: r.off, Want: p, Len: r.size, Err: ErrInvalidSeek}
	}
	r.off = p
	return nil
}
