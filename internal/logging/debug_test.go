package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("SST_DEBUG", "")
	SetVerbose(false)
	assert.False(t, DebugEnabled(), "disabled when SST_DEBUG is empty")

	t.Setenv("SST_DEBUG", "1")
	assert.True(t, DebugEnabled(), "enabled when SST_DEBUG is set")

	t.Setenv("SST_DEBUG", "")
	SetVerbose(true)
	assert.True(t, DebugEnabled(), "enabled by verbose flag")
	SetVerbose(false)
}

func TestDebugf(t *testing.T) {
	buf := captureOutput(t)
	t.Setenv("SST_DEBUG", "")

	Debugf("hidden %s\n", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debugf("loaded %d tasks\n", 2)
	assert.Equal(t, "[debug] loaded 2 tasks\n", buf.String())
}

func TestDebugln(t *testing.T) {
	buf := captureOutput(t)
	t.Setenv("SST_DEBUG", "")

	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("SST_DEBUG", "true")
	Debugln("seeded", "demo tasks")
	assert.Equal(t, "[debug] seeded demo tasks\n", buf.String())
}
