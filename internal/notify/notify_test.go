package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterSink(t *testing.T) {
	tests := []struct {
		name     string
		n        Notification
		expected string
	}{
		{
			name:     "title and description",
			n:        Notification{Title: "Task deleted", Description: `"Buy milk" has been removed.`},
			expected: "Task deleted: \"Buy milk\" has been removed.\n",
		},
		{
			name:     "title only",
			n:        Notification{Title: "Signed out successfully"},
			expected: "Signed out successfully\n",
		},
		{
			name:     "destructive",
			n:        Notification{Title: "Authentication failed", Description: "Please try again later", Severity: SeverityDestructive},
			expected: "! Authentication failed: Please try again later\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewWriterSink(&buf).Notify(tt.n)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(Notification{Title: "one"})
	r.Notify(Notification{Title: "two"})

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, "two", last.Title)
	assert.Len(t, r.Notifications(), 2)

	r.Reset()
	assert.Empty(t, r.Notifications())
}

func TestSafe_RecoversPanics(t *testing.T) {
	panicking := SinkFunc(func(Notification) { panic("sink exploded") })

	assert.NotPanics(t, func() {
		Safe(panicking).Notify(Notification{Title: "Task created successfully!"})
	})
}

func TestSafe_NilAndIdempotent(t *testing.T) {
	assert.NotPanics(t, func() { Safe(nil).Notify(Notification{Title: "x"}) })

	r := &Recorder{}
	wrapped := Safe(Safe(r))
	wrapped.Notify(Notification{Title: "x"})
	assert.Len(t, r.Notifications(), 1)
	_, doubleWrapped := wrapped.(safeSink).next.(safeSink)
	assert.False(t, doubleWrapped)
}
