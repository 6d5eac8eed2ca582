package wifi

import "strconv"

// State is the connectivity state of the WiFi module. The numeric values
// are reported to the PC console as wifi_state.
type State uint8

const (
	// None is the state before Initialize. Poll does nothing in it.
	None State = iota
	Initialize
	Restarting
	ModeConfigure
	ModeConfiguring
	NetworkConnect
	NetworkConnecting
	NetworkConnected
	MqttConnect
	MqttConnecting
	MqttConnected
	PublishStart
	Publish
	PublishWaitReply
	ErrorInitialize
	ErrorNetwork
	ErrorMqttBroker
	ErrorMqttPublish
)

var stateNames = [...]string{
	None:              "None",
	Initialize:        "Initialize",
	Restarting:        "Restarting",
	ModeConfigure:     "ModeConfigure",
	ModeConfiguring:   "ModeConfiguring",
	NetworkConnect:    "NetworkConnect",
	NetworkConnecting: "NetworkConnecting",
	NetworkConnected:  "NetworkConnected",
	MqttConnect:       "MqttConnect",
	MqttConnecting:    "MqttConnecting",
	MqttConnected:     "MqttConnected",
	PublishStart:      "PublishStart",
	Publish:           "Publish",
	PublishWaitReply:  "PublishWaitReply",
	ErrorInitialize:   "ErrorInitialize",
	ErrorNetwork:      "ErrorNetwork",
	ErrorMqttBroker:   "ErrorMqttBroker",
	ErrorMqttPublish:  "ErrorMqttPublish",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// IsError reports whether s is one of the error states.
func (s State) IsError() bool {
	return s >= ErrorInitialize && s <= ErrorMqttPublish
}

// Phase identifies a retry counter and its timeout.
type Phase int

const (
	PhaseInitialize Phase = iota
	PhaseNetwork
	PhaseMqttConnect
	PhaseMqttPublish
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialize:
		return "initialize"
	case PhaseNetwork:
		return "network"
	case PhaseMqttConnect:
		return "mqtt-connect"
	case PhaseMqttPublish:
		return "mqtt-publish"
	default:
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
}
