// Package wifi drives an ESP8266-class WiFi module over AT commands: it
// joins the configured network, opens a TCP socket to the broker and
// publishes sensor readings whenever they change.
//
// The Manager is a non-blocking state machine. The main loop calls Poll as
// often as it likes; each call moves at most one received line into the
// line buffer and performs at most one state step. Bytes arrive through
// OnByteReceived, which the Serial implementation calls from its receive
// context; that path only touches the ring buffer.
package wifi

import (
	"fmt"
	"log/slog"

	"github.com/weaver-sensing/weaver/at"
	"github.com/weaver-sensing/weaver/ringbuf"
	"github.com/weaver-sensing/weaver/sensor"
	"github.com/weaver-sensing/weaver/softtimer"
)

const (
	cmdBufferSize     = 128
	bodyBufferSize    = 128
	payloadBufferSize = 512
)

// Responses each waiting state listens for, in match order.
var (
	restartReplies    = []at.Keyword{at.Ready, at.Error}
	modeReplies       = []at.Keyword{at.OK, at.Error}
	joinReplies       = []at.Keyword{at.OK, at.Fail}
	connectReplies    = []at.Keyword{at.OK, at.AlreadyConnected, at.Error}
	linkDropReplies   = []at.Keyword{at.WifiDisconnected, at.Closed}
	promptReplies     = []at.Keyword{at.OK}
	sendResultReplies = []at.Keyword{at.SendOK, at.SendFail}
)

// Manager owns the connectivity state, the configuration and all receive
// buffers. Apart from OnByteReceived its methods must be called from one
// goroutine.
type Manager struct {
	store      ConfigStore
	sensors    Sensors
	logger     *slog.Logger
	maxRetries [phaseCount]uint8

	serial Serial
	bound  bool
	onByte func(byte)
	rx     *ringbuf.Buffer

	config  Configuration
	state   State
	retries [phaseCount]uint8
	parked  bool

	// line is the receive line buffer; its capacity never changes
	line      []byte
	lineReady bool

	timers   [phaseCount]*softtimer.Timer
	settle   *softtimer.Timer
	settling bool

	published sensor.Snapshot
	cmd       []byte
	body      []byte
	payload   []byte
}

// New returns a Manager in state None. Call Initialize to bind the serial
// link and start.
func New(config Config) (*Manager, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	m := &Manager{
		store:      config.store,
		sensors:    config.sensors,
		logger:     config.logger,
		maxRetries: config.maxRetries,
		rx:         ringbuf.New(config.ringSize),
		line:       make([]byte, 0, config.rxBufferSize),
		settle:     softtimer.New(config.clock, config.promptSettle),
		cmd:        make([]byte, 0, cmdBufferSize),
		body:       make([]byte, 0, bodyBufferSize),
		payload:    make([]byte, 0, payloadBufferSize),
	}
	for p := range m.timers {
		m.timers[p] = softtimer.New(config.clock, config.timeouts[p])
	}
	m.onByte = m.OnByteReceived
	return m, nil
}

// Initialize binds s, clears all buffers and retry counters, arms byte
// reception and loads the stored configuration. On success the state is
// Initialize and the next Poll resets the module. On failure the manager
// is left unbound in state None.
func (m *Manager) Initialize(s Serial) error {
	if s == nil {
		return ErrNoSerial
	}
	m.bound = false
	m.state = None
	m.serial = s
	m.rx.Reset()
	m.clearLine()
	m.retries = [phaseCount]uint8{}

	if err := s.ReceiveByte(m.onByte); err != nil {
		return fmt.Errorf("arm serial receive: %w", err)
	}
	config, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	m.config = config
	m.bound = true
	m.enter(Initialize)
	return nil
}

// SetConfiguration validates and persists c, then restarts the connection
// sequence with it. When validation or persistence fails the live
// configuration and state are left as they were.
func (m *Manager) SetConfiguration(c Configuration) error {
	if !m.bound {
		return ErrNotInitialized
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := m.store.Save(c); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}
	m.config = c
	m.retries = [phaseCount]uint8{}
	m.enter(Initialize)
	return nil
}

// Configuration returns a copy of the live configuration.
func (m *Manager) Configuration() Configuration { return m.config }

func (m *Manager) State() State { return m.state }

// Retries returns the retry counter of phase p.
func (m *Manager) Retries(p Phase) uint8 {
	if p < 0 || p >= phaseCount {
		return 0
	}
	return m.retries[p]
}

// Published returns the readings the last publish cycle started from.
func (m *Manager) Published() sensor.Snapshot { return m.published }

// OnByteReceived queues b and re-arms reception. It is the receive
// callback handed to Serial.ReceiveByte and may run concurrently with
// Poll. A failed re-arm leaves reception stopped until Initialize.
func (m *Manager) OnByteReceived(b byte) {
	m.rx.Push(b)
	if m.serial != nil {
		_ = m.serial.ReceiveByte(m.onByte)
	}
}

// Poll drains received bytes up to the next LF and performs one state
// step. It never blocks except for Serial.Write.
func (m *Manager) Poll() {
	if m.state == None {
		return
	}
	m.drain()
	m.step()
}

func (m *Manager) drain() {
	for {
		b, ok := m.rx.Pop()
		if !ok {
			return
		}
		if len(m.line) == cap(m.line) {
			m.line = m.line[:0]
		}
		m.line = append(m.line, b)
		if b == at.LF {
			m.lineReady = true
			return
		}
	}
}

func (m *Manager) step() {
	switch m.state {
	case Initialize:
		m.command(at.AppendCommand(m.cmd[:0], at.CmdReset), Restarting, ErrorInitialize)

	case Restarting:
		switch m.classify(restartReplies) {
		case at.Ready:
			m.enter(ModeConfigure)
		case at.Error:
			m.enter(ErrorInitialize)
		default:
			m.expire(PhaseInitialize, ErrorInitialize)
		}

	case ModeConfigure:
		m.command(at.AppendCommand(m.cmd[:0], at.CmdStationMode), ModeConfiguring, ErrorInitialize)

	case ModeConfiguring:
		switch m.classify(modeReplies) {
		case at.OK:
			m.enter(NetworkConnect)
		case at.Error:
			m.enter(ErrorInitialize)
		default:
			m.expire(PhaseInitialize, ErrorInitialize)
		}

	case NetworkConnect:
		cmd := at.AppendJoinAP(m.cmd[:0], m.config.NetworkSSID, m.config.NetworkPassword)
		m.command(cmd, NetworkConnecting, ErrorNetwork)

	case NetworkConnecting:
		switch m.classify(joinReplies) {
		case at.OK:
			m.enter(NetworkConnected)
		case at.Fail:
			m.enter(ErrorNetwork)
		default:
			m.expire(PhaseNetwork, ErrorNetwork)
		}

	case NetworkConnected:
		m.retries[PhaseNetwork] = 0
		m.enter(MqttConnect)

	case MqttConnect:
		cmd := at.AppendStartTCP(m.cmd[:0], m.config.BrokerAddress, m.config.BrokerPort)
		m.command(cmd, MqttConnecting, ErrorMqttBroker)

	case MqttConnecting:
		switch m.classify(connectReplies) {
		case at.OK, at.AlreadyConnected:
			m.enter(MqttConnected)
		case at.Error:
			m.enter(ErrorMqttBroker)
		default:
			m.expire(PhaseMqttConnect, ErrorMqttBroker)
		}

	case MqttConnected:
		switch m.classify(linkDropReplies) {
		case at.WifiDisconnected:
			m.enter(ErrorNetwork)
			return
		case at.Closed:
			m.enter(ErrorMqttBroker)
			return
		}
		if r := m.sensors.Readings(); r.Changed(m.published) {
			m.published = r
			m.enter(PublishStart)
		}

	case PublishStart:
		m.body = appendBody(m.body[:0], m.published)
		m.payload = appendPayload(m.payload[:0], &m.config, m.body)
		m.command(at.AppendSend(m.cmd[:0], len(m.payload)), Publish, ErrorMqttPublish)

	case Publish:
		m.publish()

	case PublishWaitReply:
		switch m.classify(sendResultReplies) {
		case at.SendOK:
			m.retries[PhaseMqttPublish] = 0
			m.enter(MqttConnected)
		case at.SendFail:
			m.enter(ErrorMqttPublish)
		default:
			m.expire(PhaseMqttPublish, ErrorMqttPublish)
		}

	case ErrorInitialize:
		m.retry(PhaseInitialize, Initialize)
	case ErrorNetwork:
		m.retry(PhaseNetwork, NetworkConnect)
	case ErrorMqttBroker:
		m.retry(PhaseMqttConnect, MqttConnect)
	case ErrorMqttPublish:
		m.retry(PhaseMqttPublish, PublishStart)
	}
}

// publish waits for the send prompt, lets it settle and writes the
// payload, all under the publish timeout.
func (m *Manager) publish() {
	if m.settling {
		if m.settle.Expired() {
			m.command(m.payload, PublishWaitReply, ErrorMqttPublish)
			return
		}
		m.expire(PhaseMqttPublish, ErrorMqttPublish)
		return
	}
	if m.classify(promptReplies) == at.OK {
		if m.settle.Interval() == 0 {
			m.command(m.payload, PublishWaitReply, ErrorMqttPublish)
			return
		}
		m.settling = true
		m.settle.Start()
		return
	}
	m.expire(PhaseMqttPublish, ErrorMqttPublish)
}

// command clears the line buffer, writes b and moves to next, or to fail
// when the write errors.
func (m *Manager) command(b []byte, next, fail State) {
	m.clearLine()
	if _, err := m.serial.Write(b); err != nil {
		m.logger.Debug("wifi:write-failed", "state", m.state, "error", err)
		m.enter(fail)
		return
	}
	m.enter(next)
}

// classify consumes a pending line and returns the first of kws it
// contains, or "" when no line is pending or nothing matched. The line
// buffer is cleared either way.
func (m *Manager) classify(kws []at.Keyword) at.Keyword {
	if !m.lineReady {
		return ""
	}
	kw, _ := at.Match(m.line, kws...)
	m.clearLine()
	return kw
}

func (m *Manager) expire(p Phase, fail State) {
	if m.timers[p].Expired() {
		m.enter(fail)
	}
}

func (m *Manager) retry(p Phase, next State) {
	if m.retries[p] >= m.maxRetries[p] {
		if !m.parked {
			m.parked = true
			m.logger.Warn("wifi:retries-exhausted", "state", m.state, "phase", p, "retries", m.retries[p])
		}
		return
	}
	m.retries[p]++
	m.enter(next)
}

// enter switches to next and runs its entry actions: starting the phase
// timer of waiting states and resetting the counter of a completed phase.
func (m *Manager) enter(next State) {
	m.logger.Debug("wifi:transition", "from", m.state, "to", next)
	m.state = next
	m.settling = false
	m.parked = false

	switch next {
	case Restarting, ModeConfiguring:
		m.timers[PhaseInitialize].Start()
	case NetworkConnect:
		m.retries[PhaseInitialize] = 0
	case NetworkConnecting:
		m.timers[PhaseNetwork].Start()
	case MqttConnecting:
		m.timers[PhaseMqttConnect].Start()
	case MqttConnected:
		m.retries[PhaseMqttConnect] = 0
	case Publish, PublishWaitReply:
		m.timers[PhaseMqttPublish].Start()
	}
}

func (m *Manager) clearLine() {
	m.line = m.line[:0]
	m.lineReady = false
}
