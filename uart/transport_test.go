package uart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.bug.st/serial"
	"go.uber.org/mock/gomock"

	"github.com/weaver-sensing/weaver/uart"
)

func TestSerialDialer_Dial_EmptyPortName(t *testing.T) {
	dialer := uart.SerialDialer{
		PortName: "",
	}

	transport, err := dialer.Dial(context.Background())

	if err != uart.ErrNoPortName {
		t.Errorf("expected ErrNoPortName, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for empty port name")
	}
}

func TestSerialDialer_Dial_NilContext(t *testing.T) {
	dialer := uart.SerialDialer{
		PortName: "/dev/ttyUSB0",
	}

	transport, err := dialer.Dial(nil)

	if err != uart.ErrNilContext {
		t.Errorf("expected ErrNilContext, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for nil context")
	}
}

func TestSerialDialer_Dial_ContextCanceled(t *testing.T) {
	dialer := uart.SerialDialer{
		PortName: "/dev/nonexistent",
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport, err := dialer.Dial(ctx)

	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for canceled context")
	}
}

func TestSerialDialer_Dial_NonexistentPort(t *testing.T) {
	tests := []struct {
		name   string
		dialer uart.SerialDialer
	}{
		{
			name:   "Default mode",
			dialer: uart.SerialDialer{PortName: "/dev/nonexistent"},
		},
		{
			name: "Explicit mode and timeout",
			dialer: uart.SerialDialer{
				PortName: "/dev/nonexistent",
				Mode: &serial.Mode{
					BaudRate: 9600,
					Parity:   serial.NoParity,
					DataBits: 8,
					StopBits: serial.OneStopBit,
				},
				ReadTimeout: 100 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := tt.dialer.Dial(context.Background())
			if err == nil {
				t.Fatal("expected error for non-existent port")
			}
			if transport != nil {
				t.Error("expected nil transport for non-existent port")
			}
		})
	}
}

func TestDialerInterface(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDialer := uart.NewMockDialer(ctrl)
	mockTransport := uart.NewMockTransport(ctrl)

	var _ uart.Dialer = mockDialer
	var _ uart.Dialer = uart.SerialDialer{}

	ctx := context.Background()
	mockDialer.EXPECT().Dial(ctx).Return(mockTransport, nil)

	transport, err := mockDialer.Dial(ctx)
	if err != nil {
		t.Errorf("unexpected dial error: %v", err)
	}
	if transport != mockTransport {
		t.Error("expected mock transport to be returned")
	}
}

func TestDialerInterface_Error(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockDialer := uart.NewMockDialer(ctrl)
	dialError := errors.New("dial failed")

	ctx := context.Background()
	mockDialer.EXPECT().Dial(ctx).Return(nil, dialError)

	transport, err := mockDialer.Dial(ctx)
	if err != dialError {
		t.Errorf("expected dial error, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport on error")
	}
}
