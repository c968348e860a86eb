package driver

import (
	"fmt"
	"strings"
	"time"
)

// Timings holds stage durations of one run.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Duration returns the recorded duration of stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Total sums all stages.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, d := range t.stages {
		total += d
	}
	return total
}

// Summary renders the timings in pipeline order.
func (t Timings) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, stage := range []Stage{StageDecode, StageGenerate} {
		if d, ok := t.stages[stage]; ok {
			fmt.Fprintf(&sb, "  %-10s %8.3f ms\n", stage, millis(d))
		}
	}
	fmt.Fprintf(&sb, "  %-10s %8.3f ms\n", "total", millis(t.Total()))
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
