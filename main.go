package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	flag.String("modem-port", "/dev/ttyUSB0", "Serial port of the WiFi module")
	flag.Int("modem-baud", 115200, "Baud rate of the WiFi module")
	flag.String("console-port", "", "Serial port of the PC console (empty disables)")
	flag.Int("console-baud", 115200, "Baud rate of the PC console")
	flag.String("flash-image", "weaver-flash.bin", "File backing the configuration flash")
	flag.String("config-offset", "0x1F800", "Offset of the configuration record in the flash image")
	flag.String("sensor-mode", SensorModeNone, "Sensor source (none, i2c)")
	flag.String("i2c-bus", "", "I2C bus name (empty selects the first bus)")
	flag.Duration("measurement-interval", 5*time.Second, "Time between sensor samples")
	flag.Duration("poll-interval", 10*time.Millisecond, "Main loop period")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP status server (empty disables)")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	config, err := LoadConfig(WithDefaults(), WithFile(path), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logLevel, _ := parseLevel(config.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting sensor node",
		"modem_port", config.ModemPort,
		"console_port", config.ConsolePort,
		"sensor_mode", config.SensorMode,
		"flash_image", config.FlashImage)

	if err := run(ctx, config, logger); err != nil {
		logger.Error("Node stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Node stopped")
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
