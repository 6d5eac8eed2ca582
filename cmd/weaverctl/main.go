// Command weaverctl talks to the PC console of a sensor node over a
// serial port: it lists ports, reads status and sensor values, and pushes
// a new network configuration.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
