package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weaver-sensing/weaver/console"
	"github.com/weaver-sensing/weaver/wifi"
)

var (
	configFile string
	newConfig  wifi.Configuration
)

var errRejected = errors.New("node rejected the configuration")

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Replace the network and broker configuration",
	Long: `Send a new configuration to the node. The node stores it and restarts
its connection sequence.

Values come from a YAML file (--file) with the keys network_ssid,
network_password, broker_address, broker_port and broker_token. Flags
given on the command line override the file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildConfiguration(cmd)
		if err != nil {
			return err
		}
		cl, closeConn, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer closeConn()
		if err := sendConfiguration(cl, c); err != nil {
			return err
		}
		cmd.Println("Configuration applied")
		return nil
	},
}

func init() {
	f := configureCmd.Flags()
	f.StringVarP(&configFile, "file", "f", "", "YAML file with the configuration")
	f.StringVar(&newConfig.NetworkSSID, "ssid", "", "Network SSID")
	f.StringVar(&newConfig.NetworkPassword, "password", "", "Network password")
	f.StringVar(&newConfig.BrokerAddress, "broker", "", "Broker address")
	f.Uint32Var(&newConfig.BrokerPort, "broker-port", 0, "Broker port")
	f.StringVar(&newConfig.BrokerToken, "token", "", "Broker device token")
	rootCmd.AddCommand(configureCmd)
}

// buildConfiguration merges the file and the flags that were set.
func buildConfiguration(cmd *cobra.Command) (wifi.Configuration, error) {
	var c wifi.Configuration
	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return c, err
		}
		defer f.Close()
		if c, err = decodeConfiguration(f); err != nil {
			return c, fmt.Errorf("%s: %w", configFile, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ssid") {
		c.NetworkSSID = newConfig.NetworkSSID
	}
	if flags.Changed("password") {
		c.NetworkPassword = newConfig.NetworkPassword
	}
	if flags.Changed("broker") {
		c.BrokerAddress = newConfig.BrokerAddress
	}
	if flags.Changed("broker-port") {
		c.BrokerPort = newConfig.BrokerPort
	}
	if flags.Changed("token") {
		c.BrokerToken = newConfig.BrokerToken
	}

	if c.NetworkSSID == "" || c.BrokerAddress == "" || c.BrokerPort == 0 {
		return c, errors.New("ssid, broker and broker-port are required")
	}
	for _, v := range []string{c.NetworkSSID, c.NetworkPassword, c.BrokerAddress, c.BrokerToken} {
		if strings.ContainsAny(v, "|\r\n") {
			return c, fmt.Errorf("value %q contains a field separator or line break", v)
		}
	}
	return c, c.Validate()
}

func decodeConfiguration(r io.Reader) (wifi.Configuration, error) {
	var c wifi.Configuration
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return wifi.Configuration{}, err
	}
	return c, nil
}

func sendConfiguration(cl *client, c wifi.Configuration) error {
	var r console.ConfigReply
	if err := cl.request(console.FormatConfiguration(c), &r); err != nil {
		return err
	}
	if !r.OK() {
		return errRejected
	}
	return nil
}
