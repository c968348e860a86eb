package driver

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"l5cond/internal/decoder"
	"l5cond/internal/diag"
	"l5cond/internal/dialect"
	"l5cond/internal/model"
	"l5cond/internal/testkit"
	"l5cond/internal/trace"
)

func encode(p *testkit.Payload) string {
	return base64.StdEncoding.EncodeToString(p.Bytes())
}

func TestDecodeBase64(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xFE, 0xFF, 0x32}
	std := base64.StdEncoding.EncodeToString(raw)

	bag := diag.NewBag(4)
	got, err := DecodeBase64(" "+std[:4]+"\n"+std[4:]+"\t", diag.BagReporter{Bag: bag})
	if err != nil || string(got) != string(raw) || bag.Len() != 0 {
		t.Fatalf("std decode = %v, %v, %v", got, err, bag.Items())
	}

	got, err = DecodeBase64(toFullWidth(std), nil)
	if err != nil || string(got) != string(raw) {
		t.Fatalf("full-width decode = %v, %v", got, err)
	}

	got, err = DecodeBase64(base64.RawURLEncoding.EncodeToString(raw), diag.BagReporter{Bag: bag})
	if err != nil || string(got) != string(raw) {
		t.Fatalf("lenient decode = %v, %v", got, err)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.DrvBadEncoding {
		t.Fatalf("expected DrvBadEncoding warning, got %v", bag.Items())
	}

	for _, bad := range []string{"", "   ", "not base64!"} {
		if _, err := DecodeBase64(bad, nil); !errors.Is(err, ErrBadEncoding) {
			t.Errorf("DecodeBase64(%q) error = %v", bad, err)
		}
	}
}

func TestRunGeneratesCode(t *testing.T) {
	item := Item{Name: "door", Text: encode(testkit.NewPayload(decoder.FormatLocal).
		Call(0x8D7666D8, 1, testkit.Arg(42)).Int(0).Cmp(model.Equal))}
	res := Run(context.Background(), item, Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if !strings.Contains(res.Code, "if (!isHaveItem(42)) {") {
		t.Fatalf("unexpected code:\n%s", res.Code)
	}
	if res.Model.Len() != 1 || res.Name != "door" {
		t.Fatalf("result = %+v", res)
	}

	res = Run(context.Background(), item, Options{Lang: dialect.Squirrel})
	if !strings.HasPrefix(res.Code, "function condition()") {
		t.Fatalf("unexpected squirrel code:\n%s", res.Code)
	}

	res = Run(context.Background(), item, Options{DecodeOnly: true})
	if res.Code != "" || res.Model == nil {
		t.Fatalf("decode-only result = %+v", res)
	}
}

func TestRunReportsFatalErrors(t *testing.T) {
	res := Run(context.Background(), Item{Text: base64.StdEncoding.EncodeToString([]byte{0x01})}, Options{})
	if !errors.Is(res.Err, decoder.ErrOutOfBounds) || res.Model != nil || res.Code != "" {
		t.Fatalf("result = %+v", res)
	}
	if res.Bag == nil {
		t.Fatal("bag must always be set")
	}
}

func TestRunTraces(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	Run(ctx, Item{Name: "x", Text: encode(testkit.NewPayload(decoder.FormatLocal).Int(1))}, Options{})

	seen := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		seen[ev.Name] = true
	}
	for _, name := range []string{"run", "decode", "generate"} {
		if !seen[name] {
			t.Errorf("missing span %q", name)
		}
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestBatchKeepsOrder(t *testing.T) {
	items := []Item{
		{Name: "a", Text: encode(testkit.NewPayload(decoder.FormatLocal).Int(1))},
		{Name: "b", Text: "%%%"},
		{Name: "c", Text: encode(testkit.NewPayload(decoder.FormatLocal).Call(0x98EE4B47, 0).Int(3).Cmp(model.Less))},
		{Name: "d", Text: encode(testkit.NewPayload(decoder.FormatLocal))},
	}
	sink := &recordSink{}
	results, err := Batch(context.Background(), items, Options{}, 2, sink)
	if err != nil {
		t.Fatal(err)
	}
	for i, res := range results {
		if res.Name != items[i].Name {
			t.Fatalf("result %d is %q, want %q", i, res.Name, items[i].Name)
		}
	}
	if !errors.Is(results[1].Err, ErrBadEncoding) {
		t.Fatalf("b: expected ErrBadEncoding, got %v", results[1].Err)
	}
	if !strings.Contains(results[2].Code, "getGameSubPhase() < 3") {
		t.Fatalf("c: unexpected code:\n%s", results[2].Code)
	}
	if !strings.Contains(results[3].Code, "result = true;") {
		t.Fatalf("d: unexpected code:\n%s", results[3].Code)
	}

	final := map[string]Status{}
	for _, ev := range sink.events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			final[ev.Item] = ev.Status
		}
	}
	want := map[string]Status{"a": StatusDone, "b": StatusError, "c": StatusDone, "d": StatusDone}
	for name, status := range want {
		if final[name] != status {
			t.Errorf("%s: final status %q, want %q", name, final[name], status)
		}
	}
}

func TestFinalEventCarriesCounts(t *testing.T) {
	tests := []struct {
		name   string
		item   Item
		opts   Options
		status Status
		blocks int
		diags  int
	}{
		{
			name:   "clean",
			item:   Item{Name: "clean", Text: encode(testkit.NewPayload(decoder.FormatLocal).Int(1).Sep().Int(2))},
			status: StatusDone,
			blocks: 2,
		},
		{
			name:   "fallback type tag",
			item:   Item{Name: "tagged", Text: encode(testkit.NewPayload(decoder.FormatMemory).Mem(0x3F1C8A02, 0x99, false).Int(3).Cmp(model.Equal))},
			opts:   Options{Format: decoder.FormatMemory},
			status: StatusDone,
			blocks: 1,
			diags:  1,
		},
		{
			name:   "bad encoding",
			item:   Item{Name: "broken", Text: "%%%"},
			status: StatusError,
			diags:  -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordSink{}
			res := run(context.Background(), tt.item, tt.opts.withDefaults(), sink)
			last := sink.events[len(sink.events)-1]
			if last.Item != tt.item.Name || last.Status != tt.status || last.Blocks != tt.blocks {
				t.Fatalf("final event = %+v", last)
			}
			want := tt.diags
			if want < 0 {
				want = res.Bag.Len()
			}
			if last.Diagnostics != want {
				t.Fatalf("diagnostics = %d, want %d", last.Diagnostics, want)
			}
			if tt.status == StatusError && last.Err == nil {
				t.Fatal("error event without Err")
			}
		})
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items := []Item{{Name: "a", Text: encode(testkit.NewPayload(decoder.FormatLocal))}}
	if _, err := Batch(ctx, items, Options{}, 1, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res, err := Batch(context.Background(), nil, Options{}, 0, nil); err != nil || len(res) != 0 {
		t.Fatalf("empty batch = %v, %v", res, err)
	}
}

func TestTimingsSummary(t *testing.T) {
	var tm Timings
	tm.Set(StageDecode, 1500000)
	tm.Set(StageGenerate, 500000)
	got := tm.Summary()
	for _, want := range []string{"decode", "1.500 ms", "generate", "0.500 ms", "total", "2.000 ms"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

// toFullWidth maps ASCII letters and digits to their full-width forms.
func toFullWidth(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			r += 0xFEE0
		}
		out = append(out, r)
	}
	return string(out)
}
