package modelio

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"l5cond/internal/decoder"
	"l5cond/internal/model"
	"l5cond/internal/testkit"
)

func sampleModel(t *testing.T) *model.Model {
	t.Helper()
	p := testkit.NewPayload(decoder.FormatMemory).
		Mem(0x6B0E5D91, 2, true).Int(7).Int(1).Cmp(model.Equal).
		Sep().
		Call(0x8D7666D8, 1, testkit.Arg(42)).Int(0).Cmp(model.Equal)
	m, err := decoder.Decode(p.Bytes(), decoder.Options{Format: decoder.FormatMemory})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFromModel(t *testing.T) {
	doc := FromModel(sampleModel(t), "v2")
	if doc.Schema != SchemaVersion || doc.Format != "v2" || len(doc.Blocks) != 2 {
		t.Fatalf("doc = %+v", doc)
	}
	bf := doc.Blocks[0].Conditions[0]
	if bf.Right != nil || len(bf.Subs) != 2 || bf.Left.Symbol != "currentBitFlag" || bf.Type != "BitFlag" {
		t.Fatalf("bit-flag condition = %+v", bf)
	}
	item := doc.Blocks[1].Conditions[0]
	if item.Left.Kind != "call" || item.Left.ID != 0x8D7666D8 || len(item.Left.Args) != 1 {
		t.Fatalf("call = %+v", item.Left)
	}
	if item.Right == nil || item.Right.Literal == nil || *item.Right.Literal != 0 || item.Right.Type != "Boolean" {
		t.Fatalf("right = %+v", item.Right)
	}
}

func TestEmptyModelDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, FromModel(nil, "")); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if blocks, ok := got["blocks"].([]any); !ok || len(blocks) != 0 {
		t.Fatalf("expected empty blocks array, got %s", buf.String())
	}
}

func TestJSONAndMsgpackAgree(t *testing.T) {
	doc := FromModel(sampleModel(t), "v2")

	var js bytes.Buffer
	if err := WriteJSON(&js, doc); err != nil {
		t.Fatal(err)
	}
	var fromJSON Document
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	var mp bytes.Buffer
	if err := WriteMsgpack(&mp, doc); err != nil {
		t.Fatal(err)
	}
	fromMsgpack, err := ReadMsgpack(&mp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fromJSON, fromMsgpack); diff != "" {
		t.Fatalf("JSON and msgpack documents differ (-json +msgpack):\n%s", diff)
	}
}

func TestReadMsgpackRejectsSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMsgpack(&buf, Document{Schema: SchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadMsgpack(&buf); err == nil {
		t.Fatal("expected schema error")
	}
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, sampleModel(t)); err != nil {
		t.Fatal(err)
	}
	want := "block 0:\n" +
		"  [0] bitflag(currentBitFlag(MemoryReference BitFlag = currentBitFlag) == [variable0(LocalInt Integer = 7), variable1(LocalInt Integer = 1)])\n" +
		"block 1:\n" +
		"  [0] IS_HAVE_ITEM(variable2(LocalInt Integer = 42)) == variable3(LocalInt Boolean = 0) : Boolean\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("pretty mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := WritePretty(&buf, nil); err != nil || buf.String() != "(no conditions)\n" {
		t.Fatalf("empty model = %q, %v", buf.String(), err)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleModel(t), "v2", FormatTable); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Conditions", "BLOCK", "CMP", "[variable0(LocalInt Integer = 7), variable1(LocalInt Integer = 1)]", "IS_HAVE_ITEM"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, "mp": FormatMsgpack, "table": FormatTable} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
