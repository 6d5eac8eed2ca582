package uart

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

//go:generate go tool mockgen -destination=mock_transport.go -package=uart . Transport,Dialer

// DefaultBaudRate is the rate of the WiFi module and the PC console.
const DefaultBaudRate = 115200

// Transport is an established, bidirectional byte stream, typically a
// serial port. A Read that returns 0 bytes and no error is a read timeout.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport.
type Dialer interface {
	// Dial creates and returns a connected Transport. It returns
	// ctx.Err() when ctx is already done.
	Dial(ctx context.Context) (Transport, error)
}

// SerialDialer opens a serial port with go.bug.st/serial.
type SerialDialer struct {
	PortName string
	// Mode defaults to DefaultBaudRate, 8N1.
	Mode *serial.Mode
	// ReadTimeout bounds every Read. Zero blocks until data arrives.
	ReadTimeout time.Duration
}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if d.PortName == "" {
		return nil, ErrNoPortName
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: DefaultBaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}
	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("uart: open %s: %w", d.PortName, err)
	}
	if d.ReadTimeout > 0 {
		if err := port.SetReadTimeout(d.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("uart: set read timeout on %s: %w", d.PortName, err)
		}
	}
	return port, nil
}
