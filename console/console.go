// Package console implements the PC command console of the node: a line
// protocol on a second serial link used by the configuration tool to read
// sensor values and status and to push a new network configuration.
//
// Requests are LF-terminated lines, matched by substring in the order
// WIFICFG, SENSORS, STATUS. Replies are single JSON objects ending with
// CRLF:
//
//	WIFICFG|ssid|password|broker_address|broker_port|broker_token
//	    {"status":"OK"} or {"status":"FAIL"}
//	SENSORS
//	    {"temperature":"23.10","humidity":"41.00","pressure":"1013.25","tvoc":"5","eco2":"400"}
//	STATUS
//	    {"wifi_state":10,"wifi_ssid":"...","wifi_password":"...","broker_address":"...","broker_port":"8080","broker_token":"..."}
package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/weaver-sensing/weaver/at"
	"github.com/weaver-sensing/weaver/ringbuf"
	"github.com/weaver-sensing/weaver/wifi"
)

//go:generate go tool mockgen -destination=mock_controller.go -package=console . Controller

const (
	// LineSize is the request line buffer. A line that fills it is
	// discarded and reading starts over.
	LineSize = 512
	ringSize = 512

	cmdConfigure at.Keyword = "WIFICFG"
	cmdSensors   at.Keyword = "SENSORS"
	cmdStatus    at.Keyword = "STATUS"

	configFields = 6
)

var commands = []at.Keyword{cmdConfigure, cmdSensors, cmdStatus}

// Controller is the part of the connectivity manager the console drives.
type Controller interface {
	SetConfiguration(c wifi.Configuration) error
	Configuration() wifi.Configuration
	State() wifi.State
}

// Console serves console requests. Start binds the link; Poll handles at
// most one request line per call.
type Console struct {
	wifi    Controller
	sensors wifi.Sensors
	logger  *slog.Logger

	link   wifi.Serial
	onByte func(byte)
	rx     *ringbuf.Buffer
	line   []byte
	reply  bytes.Buffer
}

// New returns a console for c and s. A nil logger discards.
func New(c Controller, s wifi.Sensors, logger *slog.Logger) (*Console, error) {
	if c == nil {
		return nil, ErrNoController
	}
	if s == nil {
		return nil, ErrNoSensors
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	k := &Console{
		wifi:    c,
		sensors: s,
		logger:  logger,
		rx:      ringbuf.New(ringSize),
		line:    make([]byte, 0, LineSize),
	}
	k.onByte = k.OnByteReceived
	return k, nil
}

// Start binds link, clears the buffers and arms byte reception.
func (k *Console) Start(link wifi.Serial) error {
	if link == nil {
		return ErrNoLink
	}
	k.link = link
	k.rx.Reset()
	k.line = k.line[:0]
	if err := link.ReceiveByte(k.onByte); err != nil {
		return fmt.Errorf("arm console receive: %w", err)
	}
	return nil
}

// OnByteReceived queues b and re-arms reception.
func (k *Console) OnByteReceived(b byte) {
	k.rx.Push(b)
	if k.link != nil {
		_ = k.link.ReceiveByte(k.onByte)
	}
}

// Poll drains received bytes up to the next LF and answers the request
// if a complete line arrived.
func (k *Console) Poll() {
	if k.link == nil {
		return
	}
	for {
		b, ok := k.rx.Pop()
		if !ok {
			return
		}
		if len(k.line) == cap(k.line) {
			k.line = k.line[:0]
		}
		k.line = append(k.line, b)
		if b == at.LF {
			k.handle(k.line)
			k.line = k.line[:0]
			return
		}
	}
}

func (k *Console) handle(line []byte) {
	cmd, ok := at.Match(line, commands...)
	if !ok {
		return
	}

	k.reply.Reset()
	switch cmd {
	case cmdConfigure:
		k.configure(line)
	case cmdSensors:
		k.writeJSON(sensorsReply(k.sensors.Readings()))
	case cmdStatus:
		k.writeJSON(statusReply(k.wifi.State(), k.wifi.Configuration()))
	}

	k.reply.WriteString(at.CRLF)
	if _, err := k.link.Write(k.reply.Bytes()); err != nil {
		k.logger.Warn("console:reply-failed", slog.String("command", string(cmd)), slog.Any("error", err))
	}
}

func (k *Console) configure(line []byte) {
	status := "OK"
	c, err := ParseConfiguration(string(line))
	if err == nil {
		err = k.wifi.SetConfiguration(c)
	}
	if err != nil {
		status = "FAIL"
		k.logger.Warn("console:config-rejected", slog.Any("error", err))
	} else {
		k.logger.Info("console:config-applied",
			slog.String("ssid", c.NetworkSSID),
			slog.String("broker", c.BrokerAddress),
			slog.Uint64("port", uint64(c.BrokerPort)))
	}
	k.writeJSON(ConfigReply{Status: status})
}

func (k *Console) writeJSON(v any) {
	// Marshal of these flat string structs cannot fail.
	b, _ := json.Marshal(v)
	k.reply.Write(b)
}

// ParseConfiguration parses a WIFICFG request line. The first field is
// the command itself; the port accepts decimal, 0x hex and 0 octal.
func ParseConfiguration(line string) (wifi.Configuration, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "|")
	if len(fields) != configFields {
		return wifi.Configuration{}, fmt.Errorf("%w: %d fields", ErrBadCommand, len(fields))
	}
	port, err := strconv.ParseUint(fields[4], 0, 32)
	if err != nil {
		return wifi.Configuration{}, fmt.Errorf("%w: broker port %q", ErrBadCommand, fields[4])
	}
	return wifi.Configuration{
		NetworkSSID:     fields[1],
		NetworkPassword: fields[2],
		BrokerAddress:   fields[3],
		BrokerPort:      uint32(port),
		BrokerToken:     fields[5],
	}, nil
}

// FormatConfiguration renders c as a WIFICFG request line without the
// terminator.
func FormatConfiguration(c wifi.Configuration) string {
	return strings.Join([]string{
		string(cmdConfigure),
		c.NetworkSSID,
		c.NetworkPassword,
		c.BrokerAddress,
		strconv.FormatUint(uint64(c.BrokerPort), 10),
		c.BrokerToken,
	}, "|")
}
