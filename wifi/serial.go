package wifi

import (
	"io"

	"github.com/weaver-sensing/weaver/sensor"
)

//go:generate go tool mockgen -destination=mock_serial.go -package=wifi . Serial,Sensors

// Serial is the link to the WiFi module.
//
// ReceiveByte arms reception of exactly one byte. When it arrives fn is
// called with it from the receive context, and reception stays disarmed
// until ReceiveByte is called again. Write blocks until the bytes are
// handed to the line.
type Serial interface {
	io.Writer
	ReceiveByte(fn func(byte)) error
}

// Sensors provides the readings to publish.
type Sensors interface {
	Readings() sensor.Snapshot
}
