package wifi

import "errors"

var (
	// ErrNoStore is returned when a Manager is constructed without a
	// ConfigStore.
	ErrNoStore = errors.New("no configuration store configured")

	// ErrNoSensors is returned when a Manager is constructed without a
	// Sensors source.
	ErrNoSensors = errors.New("no sensor source configured")

	// ErrNoSerial is returned when Initialize is called with a nil Serial.
	ErrNoSerial = errors.New("no serial port provided")

	// ErrNotInitialized is returned when an operation needs the serial
	// port bound by Initialize.
	ErrNotInitialized = errors.New("wifi manager not initialized")

	// ErrFieldTooLong is returned when a configuration string does not fit
	// its persisted field.
	//
	// The failing field name is added by wrapping; use errors.Is to test.
	ErrFieldTooLong = errors.New("configuration field too long")

	// ErrInvalidField is returned when a configuration string contains a
	// NUL byte, which would end the persisted field early.
	ErrInvalidField = errors.New("configuration field contains NUL")

	// ErrShortRecord is returned when decoding fewer bytes than a
	// configuration record.
	ErrShortRecord = errors.New("configuration record too short")
)
