package bytecursor

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
)

// Writer builds a byte buffer. Writing or skipping past the current length
// zero-extends the buffer.
type Writer struct {
	data []byte
	off  int
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Pos returns the current offset.
func (w *Writer) Pos() int {
	return w.off
}

// Bytes returns a copy of the written buffer.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.data))
	copy(out, w.data)
	return out
}

func (w *Writer) grow(end int) {
	if end > len(w.data) {
		w.data = append(w.data, make([]byte, end-len(w.data))...)
	}
}

// WriteBytes writes b at the cursor.
func (w *Writer) WriteBytes(b []byte) {
	end := w.off + len(b)
	w.grow(end)
	copy(w.data[w.off:end], b)
	w.off = end
}

// WriteByte writes one byte.
func (w *Writer) WriteByte(b byte) error {
	w.WriteBytes([]byte{b})
	return nil
}

// WriteUint24 writes the low 3 bytes of v in the given byte order.
func (w *Writer) WriteUint24(v uint32, order binary.ByteOrder) error {
	if v > 0xFFFFFF {
		return &Error{Op: "write uint24", Pos: w.pos32(), Want: 3, Err: ErrValueRange}
	}
	var b [4]byte
	order.PutUint32(b[:], v)
	if lowByteFirst(order) {
		w.WriteBytes(b[:3])
	} else {
		w.WriteBytes(b[1:])
	}
	return nil
}

// WriteUint32 writes v in the given byte order.
func (w *Writer) WriteUint32(v uint32, order binary.ByteOrder) {
	var b [4]byte
	order.PutUint32(b[:], v)
	w.WriteBytes(b[:])
}

// Skip advances by n bytes, zero-filling past the end.
func (w *Writer) Skip(n int) error {
	if n < 0 {
		return &Error{Op: "skip", Pos: w.pos32(), Err: ErrOutOfBounds}
	}
	w.grow(w.off + n)
	w.off += n
	return nil
}

// Seek moves to an absolute position in [0, len].
func (w *Writer) Seek(pos int) error {
	if pos < 0 || pos > len(w.data) {
		want, _ := safecast.Conv[uint32](max(pos, 0)) //nolint:errcheck
		return &Error{Op: "seek", Pos: w.pos32(), Want: want, Len: w.len32(), Err: ErrInvalidSeek}
	}
	w.off = pos
	return nil
}

func (w *Writer) pos32() uint32 {
	p, err := safecast.Conv[uint32](w.off)
	if err != nil {
		panic(fmt.Errorf("writer offset overflow: %w", err))
	}
	return p
}

func (w *Writer) len32() uint32 {
	n, err := safecast.Conv[uint32](len(w.data))
	if err != nil {
		panic(fmt.Errorf("writer length overflow: %w", err))
	}
	return n
}
