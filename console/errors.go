package console

import "errors"

var (
	// ErrNoController is returned by New when no connectivity manager is
	// provided.
	ErrNoController = errors.New("no controller configured")

	// ErrNoSensors is returned by New when no readings source is provided.
	ErrNoSensors = errors.New("no sensors configured")

	// ErrNoLink is returned by Start when the serial link is nil.
	ErrNoLink = errors.New("no serial link")

	// ErrBadCommand is reported for a WIFICFG line that does not carry
	// exactly six fields or whose port is not a number.
	ErrBadCommand = errors.New("malformed configuration command")
)
