package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"go.bug.st/serial"

	"github.com/weaver-sensing/weaver/console"
	"github.com/weaver-sensing/weaver/flash"
	"github.com/weaver-sensing/weaver/sensor"
	"github.com/weaver-sensing/weaver/softtimer"
	"github.com/weaver-sensing/weaver/uart"
	"github.com/weaver-sensing/weaver/wifi"
)

const shutdownTimeout = 5 * time.Second

// node is the cooperative main loop: every tick polls the sampler, the
// connectivity manager and the console in turn, then republishes the
// status if it changed.
type node struct {
	sampler *sensor.Sampler
	wifi    *wifi.Manager
	console *console.Console
	logger  *slog.Logger

	status atomic.Pointer[Status]
	last   Status
}

func (n *node) poll(now time.Time) {
	n.sampler.Poll()
	n.wifi.Poll()
	if n.console != nil {
		n.console.Poll()
	}
	n.publish(now)
}

func (n *node) publish(now time.Time) {
	st := statusOf(n.wifi, n.sampler)
	if n.status.Load() != nil && st == n.last {
		return
	}
	if st.State != n.last.State {
		n.logger.Info("node:state", "state", st.State)
	}
	n.last = st
	st.UpdatedAt = now
	n.status.Store(&st)
}

func run(ctx context.Context, config *Config, logger *slog.Logger) error {
	dev, err := flash.OpenFile(config.FlashImage, config.FlashSize, flash.DefaultPageSize)
	if err != nil {
		return fmt.Errorf("open flash image: %w", err)
	}
	defer dev.Close()

	store, err := wifi.NewFlashStore(dev, config.ConfigOffset)
	if err != nil {
		return err
	}

	clock := softtimer.NewSystemClock()
	sampler, closeSensors, err := openSensors(config, clock, logger.With("component", "sensor"))
	if err != nil {
		return err
	}
	defer closeSensors()

	wifiConfig, err := wifi.NewConfigBuilder().
		WithStore(store).
		WithSensors(sampler).
		WithClock(clock).
		WithLogger(logger.With("component", "wifi")).
		Build()
	if err != nil {
		return err
	}
	m, err := wifi.New(wifiConfig)
	if err != nil {
		return err
	}

	modem, err := openPort(ctx, config.ModemPort, config.ModemBaud)
	if err != nil {
		return fmt.Errorf("modem: %w", err)
	}
	defer modem.Close()
	if err := m.Initialize(modem); err != nil {
		return fmt.Errorf("initialize wifi: %w", err)
	}

	n := &node{sampler: sampler, wifi: m, logger: logger}

	var (
		consolePort *uart.Port
		consoleDone <-chan struct{}
	)
	if config.ConsolePort != "" {
		port, err := openPort(ctx, config.ConsolePort, config.ConsoleBaud)
		if err != nil {
			return fmt.Errorf("console: %w", err)
		}
		defer port.Close()

		k, err := console.New(m, sampler, logger.With("component", "console"))
		if err != nil {
			return err
		}
		if err := k.Start(port); err != nil {
			return err
		}
		n.console = k
		consolePort, consoleDone = port, port.Done()
	}
	n.publish(time.Now())

	serverErr := make(chan error, 1)
	var httpServer *http.Server
	if config.BindAddress != "" {
		httpServer = &http.Server{
			Addr: config.BindAddress,
			Handler: &Server{
				Logger: logger.With("component", "server"),
				Status: &n.status,
			},
		}
		go func() {
			logger.Info("Starting HTTP server", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	ticker := time.NewTicker(config.PollInterval)
	defer ticker.Stop()

	var loopErr error
loop:
	for {
		select {
		case <-ctx.Done():
			logger.Info("Received shutdown signal")
			break loop
		case <-modem.Done():
			loopErr = fmt.Errorf("modem link lost: %w", modem.Err())
			break loop
		case <-consoleDone:
			loopErr = fmt.Errorf("console link lost: %w", consolePort.Err())
			break loop
		case err := <-serverErr:
			loopErr = fmt.Errorf("http server: %w", err)
			break loop
		case now := <-ticker.C:
			n.poll(now)
		}
	}

	if httpServer != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Closing HTTP server")
		if err := httpServer.Shutdown(sctx); err != nil {
			logger.Error("Failed to gracefully shutdown server", "error", err)
		}
	}
	return loopErr
}

func openPort(ctx context.Context, name string, baud int) (*uart.Port, error) {
	t, err := uart.SerialDialer{
		PortName: name,
		Mode: &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
	}.Dial(ctx)
	if err != nil {
		return nil, err
	}
	return uart.NewPort(t), nil
}

// openSensors builds the sampler for the configured sensor mode. A sensor
// that fails to start is left out and logged; its readings stay zero.
func openSensors(config *Config, clock softtimer.Clock, logger *slog.Logger) (*sensor.Sampler, func(), error) {
	if config.SensorMode != SensorModeI2C {
		return sensor.NewSampler(nil, nil, clock, config.MeasurementInterval, logger), func() {}, nil
	}

	bus, err := sensor.OpenBus(config.I2CBus)
	if err != nil {
		return nil, nil, err
	}

	var (
		env sensor.EnvSensor
		air sensor.AirSensor
	)
	if d, err := sensor.NewBME280(bus, sensor.BME280Address); err != nil {
		logger.Warn("sensor:bme280-unavailable", "error", err)
	} else {
		env = d
	}
	opts := sensor.DefaultCCS811Opts
	if d, err := sensor.NewCCS811(bus, sensor.CCS811Address, &opts); err != nil {
		logger.Warn("sensor:ccs811-unavailable", "error", err)
	} else {
		logger.Info("sensor:ccs811-ready", "hw_version", d.HardwareVersion())
		air = d
	}

	return sensor.NewSampler(env, air, clock, config.MeasurementInterval, logger), func() { bus.Close() }, nil
}
