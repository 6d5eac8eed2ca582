package wifi_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/weaver-sensing/weaver/wifi"
)

func TestConfigurationLayout(t *testing.T) {
	b, err := testConfig.MarshalBinary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != wifi.BlockSize || wifi.BlockSize != 136 || wifi.RecordSize != 132 {
		t.Fatalf("unexpected sizes: block %d, record %d, encoded %d", wifi.BlockSize, wifi.RecordSize, len(b))
	}

	fields := []struct {
		name string
		off  int
		want string
	}{
		{"ssid", 0, "home"},
		{"password", 32, "secret"},
		{"address", 64, "192.168.0.218"},
		{"token", 100, "tok123"},
	}
	for _, f := range fields {
		field := b[f.off : f.off+wifi.FieldSize]
		if got := string(bytes.TrimRight(field, "\x00")); got != f.want {
			t.Errorf("%s: expected %q, got %q", f.name, f.want, got)
		}
	}
	if port := binary.LittleEndian.Uint32(b[96:]); port != 8080 {
		t.Errorf("expected port 8080 at offset 96, got %d", port)
	}
	if !bytes.Equal(b[132:], []byte{0, 0, 0, 0}) {
		t.Errorf("expected zero padding, got %x", b[132:])
	}
}

func TestConfigurationDecode(t *testing.T) {
	t.Run("Unterminated field is cut at 31 bytes", func(t *testing.T) {
		b, _ := testConfig.MarshalBinary()
		copy(b[0:32], strings.Repeat("A", 32))

		var c wifi.Configuration
		if err := c.UnmarshalBinary(b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.NetworkSSID != strings.Repeat("A", 31) {
			t.Errorf("expected 31 bytes, got %q", c.NetworkSSID)
		}
		if c.NetworkPassword != "secret" {
			t.Errorf("expected neighbouring field intact, got %q", c.NetworkPassword)
		}
	})

	t.Run("Zeroed record decodes empty", func(t *testing.T) {
		var c wifi.Configuration
		if err := c.UnmarshalBinary(make([]byte, wifi.RecordSize)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != (wifi.Configuration{}) {
			t.Errorf("expected zero configuration, got %+v", c)
		}
	})

	t.Run("Garbage decodes without error", func(t *testing.T) {
		b := bytes.Repeat([]byte{0x5A, 0xFF}, wifi.RecordSize/2)
		var c wifi.Configuration
		if err := c.UnmarshalBinary(b); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("ErrShortRecord", func(t *testing.T) {
		var c wifi.Configuration
		if err := c.UnmarshalBinary(make([]byte, 10)); !errors.Is(err, wifi.ErrShortRecord) {
			t.Errorf("expected ErrShortRecord, got: %v", err)
		}
	})
}

func TestConfigurationValidate(t *testing.T) {
	long := strings.Repeat("x", wifi.MaxFieldLen+1)
	tests := []struct {
		name   string
		mutate func(*wifi.Configuration)
		want   error
	}{
		{name: "Valid", mutate: func(*wifi.Configuration) {}},
		{name: "Max length fits", mutate: func(c *wifi.Configuration) { c.BrokerToken = long[:wifi.MaxFieldLen] }},
		{name: "SSID too long", mutate: func(c *wifi.Configuration) { c.NetworkSSID = long }, want: wifi.ErrFieldTooLong},
		{name: "Password too long", mutate: func(c *wifi.Configuration) { c.NetworkPassword = long }, want: wifi.ErrFieldTooLong},
		{name: "Address too long", mutate: func(c *wifi.Configuration) { c.BrokerAddress = long }, want: wifi.ErrFieldTooLong},
		{name: "Token too long", mutate: func(c *wifi.Configuration) { c.BrokerToken = long }, want: wifi.ErrFieldTooLong},
		{name: "SSID with embedded NUL", mutate: func(c *wifi.Configuration) { c.NetworkSSID = "home\x00net" }, want: wifi.ErrInvalidField},
		{name: "Token with trailing NUL", mutate: func(c *wifi.Configuration) { c.BrokerToken = "tok\x00" }, want: wifi.ErrInvalidField},
		{name: "Password that is only NUL", mutate: func(c *wifi.Configuration) { c.NetworkPassword = "\x00" }, want: wifi.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig
			tt.mutate(&c)
			err := c.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, expected %v", err, tt.want)
			}
		})
	}

	t.Run("MarshalBinary rejects NUL", func(t *testing.T) {
		c := testConfig
		c.NetworkSSID = "a\x00b"
		if _, err := c.MarshalBinary(); !errors.Is(err, wifi.ErrInvalidField) {
			t.Errorf("expected ErrInvalidField, got: %v", err)
		}
	})
}
