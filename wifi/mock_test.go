package wifi_test

import (
	"strconv"

	"github.com/weaver-sensing/weaver/wifi"
)

type MockSequenceBuilder struct {
	serial *wifi.MockSerial
	calls  []any
}

func NewMockSequence(serial *wifi.MockSerial) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		serial: serial,
		calls:  []any{},
	}
}

func (b *MockSequenceBuilder) write(cmd string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.serial.EXPECT().Write([]byte(cmd)).Return(len(cmd), nil),
	)
	return b
}

func (b *MockSequenceBuilder) Reset() *MockSequenceBuilder {
	return b.write("AT+RST\r\n")
}

func (b *MockSequenceBuilder) StationMode() *MockSequenceBuilder {
	return b.write("AT+CWMODE=1\r\n")
}

func (b *MockSequenceBuilder) JoinAP(ssid, password string) *MockSequenceBuilder {
	return b.write(`AT+CWJAP="` + ssid + `","` + password + "\"\r\n")
}

func (b *MockSequenceBuilder) StartTCP(addr string, port uint32) *MockSequenceBuilder {
	return b.write(`AT+CIPSTART="TCP","` + addr + `",` + strconv.FormatUint(uint64(port), 10) + "\r\n")
}

func (b *MockSequenceBuilder) Send(payload string) *MockSequenceBuilder {
	return b.write("AT+CIPSEND=" + strconv.Itoa(len(payload)) + "\r\n")
}

func (b *MockSequenceBuilder) Payload(payload string) *MockSequenceBuilder {
	return b.write(payload)
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
