package sensor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// CCS811Address is the default I²C address of the CCS811.
const CCS811Address = 0x5A

const (
	regStatus    byte = 0x00
	regMeasMode  byte = 0x01
	regResult    byte = 0x02
	regEnvData   byte = 0x05
	regHWID      byte = 0x20
	regHWVersion byte = 0x21
	regAppStart  byte = 0xF4
	regSWReset   byte = 0xFF
)

const (
	statusError    byte = 1 << 0
	statusAppValid byte = 1 << 4
)

const ccs811HWID = 0x81

var resetSequence = []byte{regSWReset, 0x11, 0xE5, 0x72, 0x8A}

var (
	// ErrAppInvalid is returned when the CCS811 reports an error or has no
	// valid application firmware after reset.
	ErrAppInvalid = errors.New("ccs811: application not valid")
	// ErrWrongDevice is returned when the hardware ID does not match.
	ErrWrongDevice = errors.New("ccs811: unexpected hardware id")
)

// DriveMode selects how often the CCS811 measures.
type DriveMode byte

const (
	DriveIdle DriveMode = iota
	Drive1s
	Drive10s
	Drive60s
	Drive250ms
)

// CCS811Opts holds the CCS811 configuration.
type CCS811Opts struct {
	Mode DriveMode
	// Settle is the wait after reset and after application start.
	Settle time.Duration
}

// DefaultCCS811Opts measures every second, as the node firmware does.
var DefaultCCS811Opts = CCS811Opts{
	Mode:   Drive1s,
	Settle: 75 * time.Millisecond,
}

// AirQuality is one CCS811 result.
type AirQuality struct {
	ECO2 uint16
	TVOC uint16
}

// CCS811 drives an AMS CCS811 air-quality sensor.
type CCS811 struct {
	d         i2c.Dev
	hwVersion byte

	// last environment written to the sensor, zero until the first write
	humidity    float32
	temperature float32
}

// NewCCS811 resets the sensor, starts its application firmware and
// configures the drive mode. opts can be nil.
func NewCCS811(b i2c.Bus, addr uint16, opts *CCS811Opts) (*CCS811, error) {
	if opts == nil {
		opts = &DefaultCCS811Opts
	}
	c := &CCS811{d: i2c.Dev{Bus: b, Addr: addr}}

	if err := c.d.Tx(resetSequence, nil); err != nil {
		return nil, fmt.Errorf("ccs811: reset: %w", err)
	}
	time.Sleep(opts.Settle)

	status, err := c.readReg(regStatus)
	if err != nil {
		return nil, err
	}
	if status&statusError != 0 || status&statusAppValid == 0 {
		return nil, fmt.Errorf("%w: status 0x%02x", ErrAppInvalid, status)
	}

	if err := c.d.Tx([]byte{regAppStart}, nil); err != nil {
		return nil, fmt.Errorf("ccs811: app start: %w", err)
	}
	time.Sleep(opts.Settle)

	id, err := c.readReg(regHWID)
	if err != nil {
		return nil, err
	}
	if c.hwVersion, err = c.readReg(regHWVersion); err != nil {
		return nil, err
	}
	if id != ccs811HWID {
		return nil, fmt.Errorf("%w: 0x%02x", ErrWrongDevice, id)
	}

	mode, err := c.readReg(regMeasMode)
	if err != nil {
		return nil, err
	}
	mode &^= 0b111 << 4
	mode |= byte(opts.Mode) << 4
	if err := c.d.Tx([]byte{regMeasMode, mode}, nil); err != nil {
		return nil, fmt.Errorf("ccs811: set drive mode: %w", err)
	}
	return c, nil
}

// HardwareVersion returns the version byte read during initialization.
func (c *CCS811) HardwareVersion() byte { return c.hwVersion }

// DataAvailable reports whether a measurement is ready. The node firmware
// treats any non-zero status as ready and so does this driver. A failed
// status read reports not ready.
func (c *CCS811) DataAvailable() bool {
	status, err := c.readReg(regStatus)
	if err != nil {
		return false
	}
	return dataReady(status)
}

func dataReady(status byte) bool {
	return status != 0
}

// SetEnvironment writes humidity (%RH) and temperature (°C) compensation
// data. Nothing is written when both equal the last values sent; the
// returned bool reports whether a write happened.
func (c *CCS811) SetEnvironment(humidity, temperature float32) (bool, error) {
	if c.humidity == humidity && c.temperature == temperature {
		return false, nil
	}
	c.humidity = humidity
	c.temperature = temperature

	hum := envWord(humidity)
	temp := envWord(temperature + 25)
	w := []byte{regEnvData, byte(hum >> 8), byte(hum), byte(temp >> 8), byte(temp)}
	if err := c.d.Tx(w, nil); err != nil {
		return false, fmt.Errorf("ccs811: write env data: %w", err)
	}
	return true, nil
}

// envWord encodes v in 1/512 steps, saturating at the limits of the
// register. Temperatures below -25 °C encode as zero.
func envWord(v float32) uint16 {
	x := v*512 + 0.5
	switch {
	case x <= 0 || math.IsNaN(float64(x)):
		return 0
	case x >= math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(x)
}

// Read returns the latest eCO2 and TVOC result.
func (c *CCS811) Read() (AirQuality, error) {
	var buf [8]byte
	if err := c.d.Tx([]byte{regResult}, buf[:]); err != nil {
		return AirQuality{}, fmt.Errorf("ccs811: read result: %w", err)
	}
	return AirQuality{
		ECO2: uint16(buf[0])<<8 | uint16(buf[1]),
		TVOC: uint16(buf[2])<<8 | uint16(buf[3]),
	}, nil
}

func (c *CCS811) String() string {
	return fmt.Sprintf("CCS811{%s}", &c.d)
}

func (c *CCS811) readReg(reg byte) (byte, error) {
	var b [1]byte
	if err := c.d.Tx([]byte{reg}, b[:]); err != nil {
		return 0, fmt.Errorf("ccs811: read 0x%02x: %w", reg, err)
	}
	return b[0], nil
}
