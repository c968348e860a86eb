package diagfmt

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"

	"l5cond/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(8)
	r := diag.BagReporter{Bag: bag}
	diag.ReportWarning(r, diag.DecComparatorStarved, diag.Span{Start: 0x0B, End: 0x0C}, "comparator == needs two operands, 1 buffered; dropped")
	diag.ReportInfo(r, diag.DecReservedCompare, diag.Span{Start: 0x12, End: 0x13}, "comparator 0x70 has no known meaning")
	return bag
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Source: "door.b64"}); err != nil {
		t.Fatal(err)
	}
	want := "door.b64:0x0B-0x0C: WARNING DEC1001: comparator == needs two operands, 1 buffered; dropped\n" +
		"door.b64:0x12-0x13: INFO DEC1004: comparator 0x70 has no known meaning\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyMax(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	want := "payload:0x0B-0x0C: WARNING DEC1001: comparator == needs two operands, 1 buffered; dropped\n" +
		"... 1 more diagnostic(s)\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Source: "stdin", Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 1 {
		t.Fatalf("out = %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "DEC1001" || d.Severity != "WARNING" || d.Location.StartByte != 0x0B || d.Location.Source != "stdin" {
		t.Fatalf("diagnostic = %+v", d)
	}
}
