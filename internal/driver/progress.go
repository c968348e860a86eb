package driver

import "time"

// Stage describes a pipeline phase of one payload.
type Stage string

const (
	// StageDecode covers base64 and token-stream decoding.
	StageDecode Stage = "decode"
	// StageGenerate covers code generation.
	StageGenerate Stage = "generate"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one payload.
type Event struct {
	Item    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Set on the final event of a payload.
	Blocks      int
	Diagnostics int
}

// ProgressSink consumes progress events. Batch calls it from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, item string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Item: item, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// emitResult sends the final event for res with its block and diagnostic counts.
func emitResult(sink ProgressSink, res Result, stage Stage, status Status, elapsed time.Duration) {
	if sink == nil {
		return
	}
	ev := Event{Item: res.Name, Stage: stage, Status: status, Err: res.Err, Elapsed: elapsed}
	if res.Model != nil {
		ev.Blocks = res.Model.Len()
	}
	if res.Bag != nil {
		ev.Diagnostics = res.Bag.Len()
	}
	sink.OnEvent(ev)
}
