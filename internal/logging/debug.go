package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	output  io.Writer = os.Stderr
)

// DebugEnabled returns true if SST_DEBUG is set or verbose output was requested
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("SST_DEBUG") != ""
}

// SetVerbose turns debug output on regardless of SST_DEBUG.
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// SetOutput redirects debug output. Not safe to call while logging.
func SetOutput(w io.Writer) {
	output = w
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, "[debug] "+format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, append([]interface{}{"[debug]"}, args...)...)
	}
}
