package uart

import "errors"

var (
	// ErrClosed is returned by a Port after Close.
	ErrClosed = errors.New("uart: port closed")

	// ErrAlreadyArmed is returned when ReceiveByte is called while a
	// previous callback is still waiting for its byte.
	ErrAlreadyArmed = errors.New("uart: receive already armed")

	// ErrNoPortName is returned by SerialDialer when PortName is empty.
	ErrNoPortName = errors.New("uart: serial port name is required")

	// ErrNilContext is returned by SerialDialer when Dial is given a nil
	// context.
	ErrNilContext = errors.New("uart: context is nil")
)
