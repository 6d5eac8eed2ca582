package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.bug.st/serial/enumerator"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := enumerator.GetDetailedPortsList()
		if err != nil {
			return fmt.Errorf("list serial ports: %w", err)
		}
		printPorts(cmd, ports)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func printPorts(cmd *cobra.Command, ports []*enumerator.PortDetails) {
	if len(ports) == 0 {
		cmd.Println("No serial ports found")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PORT\tUSB\tVID:PID\tSERIAL\tPRODUCT")
	for _, p := range ports {
		usb, id := "no", "-"
		if p.IsUSB {
			usb, id = "yes", p.VID+":"+p.PID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, usb, id, dash(p.SerialNumber), dash(p.Product))
	}
	w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
