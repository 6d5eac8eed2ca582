package console

import (
	"strconv"

	"github.com/weaver-sensing/weaver/sensor"
	"github.com/weaver-sensing/weaver/wifi"
)

// Numeric sensor values and the port travel as strings so the
// configuration tool can show them verbatim.

// ConfigReply is the answer to WIFICFG.
type ConfigReply struct {
	Status string `json:"status"`
}

// OK reports whether the configuration was applied.
func (r ConfigReply) OK() bool { return r.Status == "OK" }

// SensorsReply is the answer to SENSORS.
type SensorsReply struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
	TVOC        string `json:"tvoc"`
	ECO2        string `json:"eco2"`
}

// StatusReply is the answer to STATUS.
type StatusReply struct {
	WifiState     int    `json:"wifi_state"`
	WifiSSID      string `json:"wifi_ssid"`
	WifiPassword  string `json:"wifi_password"`
	BrokerAddress string `json:"broker_address"`
	BrokerPort    string `json:"broker_port"`
	BrokerToken   string `json:"broker_token"`
}

func sensorsReply(s sensor.Snapshot) SensorsReply {
	return SensorsReply{
		Temperature: strconv.FormatFloat(float64(s.Temperature), 'f', 2, 64),
		Humidity:    strconv.FormatFloat(float64(s.Humidity), 'f', 2, 64),
		Pressure:    strconv.FormatFloat(s.PressureHPa(), 'f', 2, 64),
		TVOC:        strconv.FormatUint(uint64(s.TVOC), 10),
		ECO2:        strconv.FormatUint(uint64(s.ECO2), 10),
	}
}

func statusReply(state wifi.State, c wifi.Configuration) StatusReply {
	return StatusReply{
		WifiState:     int(state),
		WifiSSID:      c.NetworkSSID,
		WifiPassword:  c.NetworkPassword,
		BrokerAddress: c.BrokerAddress,
		BrokerPort:    strconv.FormatUint(uint64(c.BrokerPort), 10),
		BrokerToken:   c.BrokerToken,
	}
}
