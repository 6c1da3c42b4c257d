package tinytest

import (
	"bytes"
	"io"
	"os"
	"sync"
)

var (
	sinkMu sync.Mutex
	sink   io.Writer = os.Stdout
)

// Output returns the default sink used by ExecuteSuite and ExecuteTestSuite.
func Output() io.Writer {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	return sink
}

// SetOutput replaces the default sink and returns a function restoring the
// previous one. A nil w discards output.
func SetOutput(w io.Writer) (restore func()) {
	if w == nil {
		w = io.Discard
	}
	sinkMu.Lock()
	previous := sink
	sink = w
	sinkMu.Unlock()

	return func() {
		sinkMu.Lock()
		sink = previous
		sinkMu.Unlock()
	}
}

// InterceptOutput runs fn with the default sink redirected to a buffer and
// returns what was written. The previous sink is restored even if fn panics;
// the panic is then re-raised.
func InterceptOutput(fn func()) string {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	fn()
	return buf.String()
}
