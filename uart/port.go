// Package uart adapts a host serial port to the single-byte receive model
// of a microcontroller UART: a caller arms reception of one byte with a
// callback, the callback runs on the reader goroutine when the byte
// arrives, and reception stays disarmed until the next arm.
package uart

import (
	"fmt"
	"sync"
)

const readBufferSize = 256

// Port delivers bytes read from a Transport to armed callbacks. Bytes are
// never dropped: while reception is disarmed the reader waits, and the OS
// driver keeps buffering.
type Port struct {
	t      Transport
	armed  chan func(byte)
	done   chan struct{}
	exited chan struct{}
	once   sync.Once

	mu  sync.Mutex
	err error
}

// NewPort starts reading from t. The Port owns t and closes it on Close.
func NewPort(t Transport) *Port {
	p := &Port{
		t:      t,
		armed:  make(chan func(byte), 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go p.read()
	return p
}

func (p *Port) Write(b []byte) (int, error) {
	select {
	case <-p.done:
		return 0, ErrClosed
	default:
	}
	return p.t.Write(b)
}

// ReceiveByte arms reception of one byte. It may be called from inside
// the callback to re-arm.
func (p *Port) ReceiveByte(fn func(byte)) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case <-p.exited:
		return fmt.Errorf("uart: reader stopped: %w", p.Err())
	default:
	}
	select {
	case p.armed <- fn:
		return nil
	default:
		return ErrAlreadyArmed
	}
}

// Err returns the error that stopped the reader, if any.
func (p *Port) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Done is closed once the reader has stopped, either after Close or
// because the transport failed.
func (p *Port) Done() <-chan struct{} {
	return p.exited
}

// Close stops the reader and closes the transport. Later calls return
// ErrClosed.
func (p *Port) Close() error {
	err := ErrClosed
	p.once.Do(func() {
		close(p.done)
		err = p.t.Close()
		<-p.exited
	})
	return err
}

func (p *Port) read() {
	defer close(p.exited)

	buf := make([]byte, readBufferSize)
	for {
		n, err := p.t.Read(buf)
		for _, c := range buf[:n] {
			select {
			case fn := <-p.armed:
				fn(c)
			case <-p.done:
				return
			}
		}
		if err != nil {
			select {
			case <-p.done:
			default:
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
			}
			return
		}
		select {
		case <-p.done:
			return
		default:
		}
	}
}
