package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/weaver-sensing/weaver/wifi"
)

// Sensor modes.
const (
	SensorModeNone = "none"
	SensorModeI2C  = "i2c"
)

// Config holds the application configuration
type Config struct {
	// ModemPort is the serial port of the WiFi module (e.g. "/dev/ttyUSB0")
	ModemPort string `yaml:"modem_port"`
	// ModemBaud is the baud rate of the WiFi module
	ModemBaud int `yaml:"modem_baud"`
	// ConsolePort is the serial port of the PC console. Empty disables it.
	ConsolePort string `yaml:"console_port"`
	// ConsoleBaud is the baud rate of the PC console
	ConsoleBaud int `yaml:"console_baud"`
	// FlashImage is the file that backs the configuration flash
	FlashImage string `yaml:"flash_image"`
	// FlashSize is the size of the flash image in bytes
	FlashSize int64 `yaml:"flash_size"`
	// ConfigOffset is the offset of the configuration record in the image
	ConfigOffset int64 `yaml:"config_offset"`
	// SensorMode selects the sensor source: "none" or "i2c"
	SensorMode string `yaml:"sensor_mode"`
	// I2CBus is the I²C bus name. Empty selects the first bus.
	I2CBus string `yaml:"i2c_bus"`
	// MeasurementInterval is the time between sensor samples
	MeasurementInterval time.Duration `yaml:"measurement_interval"`
	// PollInterval is the period of the main loop
	PollInterval time.Duration `yaml:"poll_interval"`
	// BindAddress is the HTTP status address (e.g. "0.0.0.0:8080"). Empty
	// disables the HTTP server.
	BindAddress string `yaml:"bind_address"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.ModemPort = "/dev/ttyUSB0"
		c.ModemBaud = 115200
		c.ConsoleBaud = 115200
		c.FlashImage = "weaver-flash.bin"
		c.FlashSize = 0x20000
		c.ConfigOffset = wifi.DefaultConfigOffset
		c.SensorMode = SensorModeNone
		c.MeasurementInterval = 5 * time.Second
		c.PollInterval = 10 * time.Millisecond
		c.BindAddress = "0.0.0.0:8080"
		c.LogLevel = "info"
		return nil
	}
}

// WithFile overlays the keys present in a YAML file. An empty path is a
// no-op.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if port := os.Getenv("MODEM_PORT"); port != "" {
			c.ModemPort = port
		}

		if baud := os.Getenv("MODEM_BAUD"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.ModemBaud = b
			}
		}

		if port, ok := os.LookupEnv("CONSOLE_PORT"); ok {
			c.ConsolePort = port
		}

		if baud := os.Getenv("CONSOLE_BAUD"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.ConsoleBaud = b
			}
		}

		if image := os.Getenv("FLASH_IMAGE"); image != "" {
			c.FlashImage = image
		}

		if off := os.Getenv("CONFIG_OFFSET"); off != "" {
			if o, err := strconv.ParseInt(off, 0, 64); err == nil {
				c.ConfigOffset = o
			}
		}

		if mode := os.Getenv("SENSOR_MODE"); mode != "" {
			c.SensorMode = mode
		}

		if bus := os.Getenv("I2C_BUS"); bus != "" {
			c.I2CBus = bus
		}

		if d := os.Getenv("MEASUREMENT_INTERVAL"); d != "" {
			if v, err := time.ParseDuration(d); err == nil {
				c.MeasurementInterval = v
			}
		}

		if d := os.Getenv("POLL_INTERVAL"); d != "" {
			if v, err := time.ParseDuration(d); err == nil {
				c.PollInterval = v
			}
		}

		if addr, ok := os.LookupEnv("BIND_ADDRESS"); ok {
			c.BindAddress = addr
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *flag.Flag) {
			v := f.Value.String()
			switch f.Name {
			case "modem-port":
				c.ModemPort = v
			case "modem-baud":
				if b, e := strconv.Atoi(v); e == nil {
					c.ModemBaud = b
				}
			case "console-port":
				c.ConsolePort = v
			case "console-baud":
				if b, e := strconv.Atoi(v); e == nil {
					c.ConsoleBaud = b
				}
			case "flash-image":
				c.FlashImage = v
			case "config-offset":
				o, e := strconv.ParseInt(v, 0, 64)
				if e != nil {
					err = fmt.Errorf("flag -config-offset: %w", e)
					return
				}
				c.ConfigOffset = o
			case "sensor-mode":
				c.SensorMode = v
			case "i2c-bus":
				c.I2CBus = v
			case "measurement-interval":
				if d, e := time.ParseDuration(v); e == nil {
					c.MeasurementInterval = d
				}
			case "poll-interval":
				if d, e := time.ParseDuration(v); e == nil {
					c.PollInterval = d
				}
			case "bind-address":
				c.BindAddress = v
			case "log-level":
				c.LogLevel = v
			}
		})
		return err
	}
}

// Validate checks the configuration. It does not modify it.
func (c *Config) Validate() error {
	var errs []error
	if c.ModemPort == "" {
		errs = append(errs, errors.New("modem port is required"))
	}
	if c.ModemBaud <= 0 {
		errs = append(errs, fmt.Errorf("modem baud rate %d must be positive", c.ModemBaud))
	}
	if c.ConsolePort != "" && c.ConsoleBaud <= 0 {
		errs = append(errs, fmt.Errorf("console baud rate %d must be positive", c.ConsoleBaud))
	}
	if c.FlashImage == "" {
		errs = append(errs, errors.New("flash image path is required"))
	}
	if c.ConfigOffset < 0 || c.ConfigOffset+wifi.BlockSize > c.FlashSize {
		errs = append(errs, fmt.Errorf("config offset 0x%x outside a flash of %d bytes", c.ConfigOffset, c.FlashSize))
	}
	switch c.SensorMode {
	case SensorModeNone, SensorModeI2C:
	default:
		errs = append(errs, fmt.Errorf("unknown sensor mode %q", c.SensorMode))
	}
	if c.MeasurementInterval <= 0 {
		errs = append(errs, fmt.Errorf("measurement interval %s must be positive", c.MeasurementInterval))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval %s must be positive", c.PollInterval))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
