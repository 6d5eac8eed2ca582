package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/weaver-sensing/weaver/console"
	"github.com/weaver-sensing/weaver/flash"
	"github.com/weaver-sensing/weaver/sensor"
	"github.com/weaver-sensing/weaver/softtimer"
	"github.com/weaver-sensing/weaver/wifi"
)

func newTestNode(t *testing.T) (*node, *wifi.TestSerial, *softtimer.ManualClock) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := &softtimer.ManualClock{}
	clock.Set(1000)

	store, err := wifi.NewFlashStore(flash.NewMemory(0x20000, flash.DefaultPageSize), wifi.DefaultConfigOffset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sampler := sensor.NewSampler(nil, nil, clock, sensor.DefaultInterval, logger)
	config, err := wifi.NewConfigBuilder().WithStore(store).WithSensors(sampler).WithClock(clock).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, _ := wifi.New(config)
	link := wifi.NewTestSerial()
	if err := m.Initialize(link); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &node{sampler: sampler, wifi: m, logger: logger}, link, clock
}

func TestNodePublishesOnChange(t *testing.T) {
	n, link, _ := newTestNode(t)
	t0 := time.Unix(100, 0)

	n.poll(t0)
	first := n.status.Load()
	if first == nil || first.State != "Restarting" || !first.UpdatedAt.Equal(t0) {
		t.Fatalf("unexpected first status %+v", first)
	}
	if w := link.Writes(); len(w) != 1 || w[0] != "AT+RST\r\n" {
		t.Errorf("expected reset command, got %q", w)
	}

	n.poll(t0.Add(time.Second))
	if n.status.Load() != first {
		t.Error("unchanged status was republished")
	}

	link.SendData("ready\r\n")
	n.poll(t0.Add(2 * time.Second))
	next := n.status.Load()
	if next == first || next.State != "ModeConfigure" {
		t.Errorf("expected new status in ModeConfigure, got %+v", next)
	}
}

func TestNodePollsConsole(t *testing.T) {
	n, _, _ := newTestNode(t)
	k, err := console.New(n.wifi, n.sampler, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	link := wifi.NewTestSerial()
	if err := k.Start(link); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n.console = k

	link.SendData("WIFICFG|lab|pw|10.0.0.9|1883|abc\n")
	n.poll(time.Unix(100, 0))
	if w := link.Writes(); len(w) != 1 || w[0] != `{"status":"OK"}`+"\r\n" {
		t.Fatalf("expected OK reply, got %q", w)
	}
	if st := n.status.Load(); st.NetworkSSID != "lab" || st.BrokerPort != 1883 || st.State != "Initialize" {
		t.Errorf("expected new configuration in status, got %+v", st)
	}
}
