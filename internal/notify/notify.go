package notify

import (
	"fmt"
	"io"
	"sync"

	"smart-share-todo/internal/logging"
)

// Severity controls how a notification is presented.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a short user-facing message about a completed action.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Sink receives notifications. Delivery is fire-and-forget.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Notify(Notification) {}

// WriterSink prints notifications as "Title: Description" lines.
type WriterSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterSink creates a sink writing to out.
func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{out: out}
}

func (s *WriterSink) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := ""
	if n.Severity == SeverityDestructive {
		prefix = "! "
	}
	if n.Description == "" {
		fmt.Fprintf(s.out, "%s%s\n", prefix, n.Title)
		return
	}
	fmt.Fprintf(s.out, "%s%s: %s\n", prefix, n.Title, n.Description)
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// Notifications returns a copy of what was recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notifications...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

// Reset drops everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

type safeSink struct {
	next Sink
}

// Safe wraps next so a panicking sink is logged and ignored. A nil sink becomes NopSink.
func Safe(next Sink) Sink {
	if next == nil {
		return NopSink{}
	}
	if s, ok := next.(safeSink); ok {
		return s
	}
	return safeSink{next: next}
}

func (s safeSink) Notify(n Notification) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debugf("notification %q dropped: %v", n.Title, r)
		}
	}()
	s.next.Notify(n)
}
