package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"l5cond/internal/driver"
)

func TestBatchViewTracksPayloads(t *testing.T) {
	events := make(chan driver.Event)
	v := NewProgressModel("batch", []string{"a", "b", "c"}, events).(*batchView)

	v.apply(driver.Event{Item: "a", Stage: driver.StageDecode, Status: driver.StatusWorking})
	if v.rows[0].state != stateDecoding || v.rows[0].state.final() {
		t.Fatalf("row a = %+v", v.rows[0])
	}
	v.apply(driver.Event{Item: "a", Stage: driver.StageGenerate, Status: driver.StatusDone, Blocks: 2, Diagnostics: 3, Elapsed: 1500 * time.Microsecond})
	v.apply(driver.Event{Item: "b", Stage: driver.StageDecode, Status: driver.StatusError, Diagnostics: 1, Err: errors.New("bad base64")})
	v.apply(driver.Event{Item: "unknown", Stage: driver.StageDecode, Status: driver.StatusDone, Blocks: 9})

	got := v.totals()
	want := batchTotals{finished: 2, failed: 1, blocks: 2, diags: 4}
	if got != want {
		t.Fatalf("totals = %+v, want %+v", got, want)
	}
	view := v.View()
	for _, s := range []string{"2/3 payloads", "2 blocks", "4 diagnostics", "1 failed", "2 blk", "3 diag", "1.5ms", "bad base64", "queued"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		ev   driver.Event
		want payloadState
	}{
		{driver.Event{Status: driver.StatusQueued}, stateQueued},
		{driver.Event{Stage: driver.StageDecode, Status: driver.StatusWorking}, stateDecoding},
		{driver.Event{Stage: driver.StageGenerate, Status: driver.StatusWorking}, stateGenerating},
		{driver.Event{Stage: driver.StageGenerate, Status: driver.StatusDone}, stateDone},
		{driver.Event{Stage: driver.StageDecode, Status: driver.StatusError}, stateFailed},
	}
	for _, tt := range tests {
		if got := stateFor(tt.ev); got != tt.want {
			t.Errorf("stateFor(%+v) = %s, want %s", tt.ev, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}

	got := truncate("payload-0001.b64", 10)
	if !strings.HasSuffix(got, "...") || runewidth.StringWidth(got) > 10 {
		t.Errorf("truncate long name = %q", got)
	}
}
