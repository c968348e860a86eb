package modelio

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/vmihailenco/msgpack/v5"

	"l5cond/internal/model"
)

// Format selects a dump layout.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatMsgpack
	FormatTable
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	case FormatTable:
		return "table"
	}
	return "unknown"
}

// ParseFormat converts a CLI spelling to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty", "text":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "table":
		return FormatTable, nil
	}
	return FormatPretty, fmt.Errorf("invalid dump format: %q (expected: pretty|json|msgpack|table)", s)
}

// Write dumps m in the given format; label is the payload format ("v1", "v2").
func Write(w io.Writer, m *model.Model, label string, format Format) error {
	switch format {
	case FormatPretty:
		return WritePretty(w, m)
	case FormatJSON:
		return WriteJSON(w, FromModel(m, label))
	case FormatMsgpack:
		return WriteMsgpack(w, FromModel(m, label))
	case FormatTable:
		return WriteTable(w, m)
	}
	return fmt.Errorf("unsupported dump format %d", format)
}

// WriteJSON writes doc as indented JSON followed by a newline.
func WriteJSON(w io.Writer, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model as JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteMsgpack writes doc as MessagePack.
func WriteMsgpack(w io.Writer, doc Document) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode model as msgpack: %w", err)
	}
	return nil
}

// ReadMsgpack reads a Document written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (Document, error) {
	var doc Document
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode msgpack model: %w", err)
	}
	if doc.Schema != SchemaVersion {
		return Document{}, fmt.Errorf("unsupported model schema %d (expected %d)", doc.Schema, SchemaVersion)
	}
	return doc, nil
}

// WritePretty writes one line per condition, grouped by block.
func WritePretty(w io.Writer, m *model.Model) error {
	var sb strings.Builder
	if m == nil || m.Len() == 0 {
		sb.WriteString("(no conditions)\n")
	} else {
		for i, b := range m.Blocks() {
			fmt.Fprintf(&sb, "block %d:\n", i)
			for j, c := range b.Conditions() {
				fmt.Fprintf(&sb, "  [%d] %s\n", j, c)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteTable renders the model as a terminal table.
func WriteTable(w io.Writer, m *model.Model) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Conditions")
	t.AppendHeader(table.Row{"Block", "#", "Left", "Cmp", "Right", "Type"})
	if m != nil {
		for i, b := range m.Blocks() {
			for j, c := range b.Conditions() {
				t.AppendRow(table.Row{i, j, c.Left(), c.Comparator().Symbol(), rightText(c), c.Type()})
			}
			if i+1 < m.Len() {
				t.AppendSeparator()
			}
		}
	}
	t.Render()
	return nil
}

func rightText(c model.Condition) string {
	if !c.IsBitFlag() {
		if c.Right() == nil {
			return ""
		}
		return c.Right().String()
	}
	parts := make([]string, 0, 2)
	for _, sub := range c.Subs() {
		parts = append(parts, sub.Left().String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
