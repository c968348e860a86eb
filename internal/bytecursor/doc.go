// Package bytecursor provides sequential, bounds-checked access to condition
// payloads.
//
// The condition format mixes big-endian header and id fields with
// little-endian identifier fields inside the same buffer, so every multi-byte
// read and write takes its byte order per call (binary.BigEndian or
// binary.LittleEndian).
//
// Reader never grows its buffer: reads, skips and seeks past the end fail
// with an error matching ErrOutOfBounds. Writer zero-extends instead.
package bytecursor
