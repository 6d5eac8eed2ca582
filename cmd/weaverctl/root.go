package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"github.com/weaver-sensing/weaver/uart"
)

var (
	// Serial connection flags
	portName string
	baudRate int
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "weaverctl",
	Short: "Sensor node console client",
	Long: `weaverctl - configure and inspect a sensor node through its PC console.

The node answers line-based requests on its console serial port:
  status     connection state and stored configuration
  sensors    latest sensor readings
  configure  replace the network and broker configuration

Connection:
  --port /dev/ttyUSB1 [--baud 115200]`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", uart.DefaultBaudRate, "Baud rate")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 2*time.Second, "Reply timeout")
}

// openClient opens the console port named by the persistent flags.
func openClient(ctx context.Context) (*client, func() error, error) {
	if portName == "" {
		return nil, nil, fmt.Errorf("no serial port given, use --port (see 'weaverctl ports')")
	}
	conn, err := uart.SerialDialer{
		PortName: portName,
		Mode: &serial.Mode{
			BaudRate: baudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
		ReadTimeout: 100 * time.Millisecond,
	}.Dial(ctx)
	if err != nil {
		return nil, nil, err
	}
	return newClient(conn, timeout), conn.Close, nil
}
