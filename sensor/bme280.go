package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// BME280Address is the I²C address of the BME280 with SDO tied low.
const BME280Address = 0x76

// BME280Opts matches the node firmware: 4x oversampling on every channel
// and an IIR filter of 4.
var BME280Opts = bmxx80.Opts{
	Temperature: bmxx80.O4x,
	Pressure:    bmxx80.O4x,
	Humidity:    bmxx80.O4x,
	Filter:      bmxx80.F4,
}

// NewBME280 opens the environmental sensor on b.
func NewBME280(b i2c.Bus, addr uint16) (*bmxx80.Dev, error) {
	opts := BME280Opts
	d, err := bmxx80.NewI2C(b, addr, &opts)
	if err != nil {
		return nil, fmt.Errorf("bme280: %w", err)
	}
	return d, nil
}

// OpenBus initializes the host drivers and opens the named I²C bus. An
// empty name selects the first available bus.
func OpenBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return b, nil
}
