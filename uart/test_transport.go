package uart

import (
	"io"
	"sync"
)

// TestTransport is a test helper that simulates a blocking serial port
// using channels. Reads block until SendData queues data or the
// transport is closed, like a real port without a read timeout.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	done     chan struct{}
	written  []byte
	closed   bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 10),
		done:     make(chan struct{}),
	}
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.written = append(t.written, p...)
	return len(p), nil
}

// Read returns queued data first; once the transport is closed and the
// queue is empty it returns io.EOF.
func (t *TestTransport) Read(p []byte) (n int, err error) {
	select {
	case data := <-t.readChan:
		return copy(p, data), nil
	case <-t.done:
	}
	select {
	case data := <-t.readChan:
		return copy(p, data), nil
	default:
		return 0, io.EOF
	}
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.done)
	}
	return nil
}

// SendData queues data to be read by the transport. It blocks while the
// queue is full and returns without queueing once the transport is closed.
func (t *TestTransport) SendData(data string) {
	select {
	case <-t.done:
		return
	default:
	}
	select {
	case <-t.done:
	case t.readChan <- []byte(data):
	}
}

// Written returns everything written so far.
func (t *TestTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.written)
}
