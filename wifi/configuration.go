package wifi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// FieldSize is the persisted size of every string field, terminator
	// included.
	FieldSize = 32
	// MaxFieldLen is the longest string a field can hold.
	MaxFieldLen = FieldSize - 1

	// RecordSize is the size of the encoded record.
	RecordSize = 4*FieldSize + 4
	// BlockSize is RecordSize padded to whole 8-byte program chunks.
	BlockSize = (RecordSize + 7) &^ 7
)

const (
	offSSID     = 0
	offPassword = offSSID + FieldSize
	offAddress  = offPassword + FieldSize
	offPort     = offAddress + FieldSize
	offToken    = offPort + 4
)

// Configuration is the network and broker configuration of the node.
type Configuration struct {
	NetworkSSID     string `yaml:"network_ssid"`
	NetworkPassword string `yaml:"network_password"`
	BrokerAddress   string `yaml:"broker_address"`
	BrokerPort      uint32 `yaml:"broker_port"`
	BrokerToken     string `yaml:"broker_token"`
}

// Validate checks that every string fits its persisted field and holds no
// NUL byte.
func (c Configuration) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"network ssid", c.NetworkSSID},
		{"network password", c.NetworkPassword},
		{"broker address", c.BrokerAddress},
		{"broker token", c.BrokerToken},
	}
	for _, f := range fields {
		if len(f.value) > MaxFieldLen {
			return fmt.Errorf("%s: %w (%d > %d bytes)", f.name, ErrFieldTooLong, len(f.value), MaxFieldLen)
		}
		if i := strings.IndexByte(f.value, 0); i >= 0 {
			return fmt.Errorf("%s: %w at byte %d", f.name, ErrInvalidField, i)
		}
	}
	return nil
}

// MarshalBinary encodes c into a BlockSize byte block. Unused field bytes
// and the padding are zero.
func (c Configuration) MarshalBinary() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b := make([]byte, BlockSize)
	copy(b[offSSID:offSSID+MaxFieldLen], c.NetworkSSID)
	copy(b[offPassword:offPassword+MaxFieldLen], c.NetworkPassword)
	copy(b[offAddress:offAddress+MaxFieldLen], c.BrokerAddress)
	binary.LittleEndian.PutUint32(b[offPort:], c.BrokerPort)
	copy(b[offToken:offToken+MaxFieldLen], c.BrokerToken)
	return b, nil
}

// UnmarshalBinary decodes a record. Each string is read up to its first
// NUL or MaxFieldLen bytes. A fully erased record decodes to the zero
// Configuration.
func (c *Configuration) UnmarshalBinary(b []byte) error {
	if len(b) < RecordSize {
		return fmt.Errorf("%w: %d bytes", ErrShortRecord, len(b))
	}
	if isErased(b[:RecordSize]) {
		*c = Configuration{}
		return nil
	}
	*c = Configuration{
		NetworkSSID:     cString(b[offSSID:]),
		NetworkPassword: cString(b[offPassword:]),
		BrokerAddress:   cString(b[offAddress:]),
		BrokerPort:      binary.LittleEndian.Uint32(b[offPort:]),
		BrokerToken:     cString(b[offToken:]),
	}
	return nil
}

func cString(field []byte) string {
	field = field[:MaxFieldLen]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

func isErased(b []byte) bool {
	for _, c := range b {
		if c != 0xFF {
			return false
		}
	}
	return true
}
