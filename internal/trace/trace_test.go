package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePass, "decode", 0)
	Point(tr, ScopeToken, "token:function", span.ID(), "0x35")
	span.WithExtra("blocks", "2").End("ok")

	out := buf.String()
	if !strings.Contains(out, "→ decode") || !strings.Contains(out, "← decode (ok) {blocks=2}") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "token:function") {
		t.Fatalf("token events must be filtered at phase level:\n%s", out)
	}
}

func TestRingTracerDumpsNDJSON(t *testing.T) {
	ring := NewRingTracer(2, LevelError)
	for _, name := range []string{"a", "b", "c"} {
		Begin(ring, ScopePass, name, 0).End("")
	}
	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], `"name":"c"`) {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must yield a disabled tracer: %v", err)
	}
}
