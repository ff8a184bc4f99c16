package driver

import "time"

// Status captures per-file progress inside LintDir.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Status  Status
	Err     error
	Elapsed time.Duration
	// Errors counts error diagnostics once the file is done.
	Errors int
	Cached bool
}

// EventSink consumes progress events. LintDir calls OnEvent from worker
// goroutines, so implementations must be goroutine-safe.
type EventSink interface {
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

func emit(sink EventSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
