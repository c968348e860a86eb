package codegen

import "strings"

// Writer accumulates generated lines with canonical indentation.
type Writer struct {
	buf         []byte
	indent      string
	indentLevel int
	atLineStart bool
	lastBlank   bool
}

// NewWriter creates a writer indenting with width spaces, or tabs when width <= 0.
func NewWriter(width int) *Writer {
	indent := "\t"
	if width > 0 {
		indent = strings.Repeat(" ", width)
	}
	return &Writer{indent: indent, atLineStart: true, buf: make([]byte, 0, 256)}
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i := 0; i < w.indentLevel; i++ {
		w.buf = append(w.buf, w.indent...)
	}
	w.atLineStart = false
}

// Line writes s on its own line at the current indentation.
func (w *Writer) Line(s string) {
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
	w.lastBlank = false
}

// Blank writes an empty line unless the output is empty or already ends with one.
func (w *Writer) Blank() {
	if len(w.buf) == 0 || w.lastBlank {
		return
	}
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
	w.lastBlank = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
