package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/weaver-sensing/weaver/console"
	"github.com/weaver-sensing/weaver/wifi"
)

var rawJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection state and stored configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closeConn, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer closeConn()
		return showStatus(cmd.OutOrStdout(), c)
	},
}

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Show the latest sensor readings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closeConn, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer closeConn()
		return showSensors(cmd.OutOrStdout(), c)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw reply")
	sensorsCmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw reply")
	rootCmd.AddCommand(statusCmd, sensorsCmd)
}

func showStatus(w io.Writer, c *client) error {
	var r console.StatusReply
	if err := c.request("STATUS", &r); err != nil {
		return err
	}
	if rawJSON {
		return printJSON(w, r)
	}
	fmt.Fprintf(w, "State:    %s (%d)\n", wifi.State(r.WifiState), r.WifiState)
	fmt.Fprintf(w, "Network:  %s\n", r.WifiSSID)
	fmt.Fprintf(w, "Password: %s\n", mask(r.WifiPassword))
	fmt.Fprintf(w, "Broker:   %s:%s\n", r.BrokerAddress, r.BrokerPort)
	fmt.Fprintf(w, "Token:    %s\n", mask(r.BrokerToken))
	return nil
}

func showSensors(w io.Writer, c *client) error {
	var r console.SensorsReply
	if err := c.request("SENSORS", &r); err != nil {
		return err
	}
	if rawJSON {
		return printJSON(w, r)
	}
	fmt.Fprintf(w, "Temperature: %s °C\n", r.Temperature)
	fmt.Fprintf(w, "Humidity:    %s %%RH\n", r.Humidity)
	fmt.Fprintf(w, "Pressure:    %s hPa\n", r.Pressure)
	fmt.Fprintf(w, "TVOC:        %s ppb\n", r.TVOC)
	fmt.Fprintf(w, "eCO2:        %s ppm\n", r.ECO2)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}
