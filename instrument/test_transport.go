package instrument

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// TestTransport is a scripted in-memory Transport. Writes are recorded for
// later inspection and reads serve replies queued in advance, which is how
// the validation properties are checked: a rejected setter must leave the
// write log empty.
// Exported for use in driver tests.
type TestTransport struct {
	mu      sync.Mutex
	writes  []string
	pending bytes.Buffer
	closed  bool
}

// NewTestTransport creates an empty scripted transport.
func NewTestTransport() *TestTransport {
	return &TestTransport{}
}

// TransportDialer adapts an already-open Transport into a Dialer, mainly
// for wiring a TestTransport into New.
type TransportDialer struct {
	Transport Transport
}

func (d TransportDialer) Dial(ctx context.Context) (Transport, error) {
	return d.Transport, nil
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.writes = append(t.writes, string(p))
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending.Len() == 0 {
		return 0, io.EOF
	}
	return t.pending.Read(p)
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// QueueReply schedules raw bytes (terminator included) to be served by
// subsequent reads, simulating an instrument reply.
func (t *TestTransport) QueueReply(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending.WriteString(data)
}

// Writes returns every payload written so far, in order.
func (t *TestTransport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.writes...)
}

// WriteCount returns the number of writes recorded.
func (t *TestTransport) WriteCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.writes)
}
