package wifi

import (
	"sync"
)

// TestSerial is a test helper that simulates the WiFi module link. Writes
// are recorded; SendData delivers bytes through the armed receive callback
// one at a time, the way a receive interrupt would. Bytes that arrive
// while reception is disarmed are dropped.
type TestSerial struct {
	mu       sync.Mutex
	fn       func(byte)
	writes   []string
	writeErr error
	armErr   error
	dropped  int
}

// NewTestSerial creates a new test serial link.
// Exported for use in tests.
func NewTestSerial() *TestSerial {
	return &TestSerial{}
}

func (t *TestSerial) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.writeErr != nil {
		return 0, t.writeErr
	}
	t.writes = append(t.writes, string(p))
	return len(p), nil
}

func (t *TestSerial) ReceiveByte(fn func(byte)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.armErr != nil {
		return t.armErr
	}
	t.fn = fn
	return nil
}

// SendData delivers data as if received from the module.
func (t *TestSerial) SendData(data string) {
	for i := 0; i < len(data); i++ {
		t.mu.Lock()
		fn := t.fn
		t.fn = nil
		if fn == nil {
			t.dropped++
		}
		t.mu.Unlock()

		if fn != nil {
			fn(data[i])
		}
	}
}

// Writes returns every write so far and forgets them.
func (t *TestSerial) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := t.writes
	t.writes = nil
	return w
}

// FailWrites makes subsequent writes return err. A nil err restores
// normal operation.
func (t *TestSerial) FailWrites(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeErr = err
}

// FailArm makes subsequent ReceiveByte calls return err.
func (t *TestSerial) FailArm(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armErr = err
}

// Dropped returns how many bytes arrived while reception was disarmed.
func (t *TestSerial) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}
