package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/weaver-sensing/weaver/sensor"
	"github.com/weaver-sensing/weaver/wifi"
)

// Readings is the JSON form of a sensor snapshot.
type Readings struct {
	Temperature float32 `json:"temperature"`
	Humidity    float32 `json:"humidity"`
	Pressure    float64 `json:"pressure_hpa"`
	TVOC        uint16  `json:"tvoc"`
	ECO2        uint16  `json:"eco2"`
}

func readingsOf(s sensor.Snapshot) Readings {
	return Readings{
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Pressure:    s.PressureHPa(),
		TVOC:        s.TVOC,
		ECO2:        s.ECO2,
	}
}

// Retries holds the retry counter of every phase.
type Retries struct {
	Initialize  uint8 `json:"initialize"`
	Network     uint8 `json:"network"`
	MqttConnect uint8 `json:"mqtt_connect"`
	MqttPublish uint8 `json:"mqtt_publish"`
}

// Status is an immutable view of the node published by the main loop.
// Credentials are left out.
type Status struct {
	State         string    `json:"state"`
	StateCode     uint8     `json:"state_code"`
	NetworkSSID   string    `json:"network_ssid"`
	BrokerAddress string    `json:"broker_address"`
	BrokerPort    uint32    `json:"broker_port"`
	Retries       Retries   `json:"retries"`
	Readings      Readings  `json:"readings"`
	Published     Readings  `json:"published"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// statusOf captures m and s. UpdatedAt is left for the caller.
func statusOf(m *wifi.Manager, s wifi.Sensors) Status {
	c := m.Configuration()
	return Status{
		State:         m.State().String(),
		StateCode:     uint8(m.State()),
		NetworkSSID:   c.NetworkSSID,
		BrokerAddress: c.BrokerAddress,
		BrokerPort:    c.BrokerPort,
		Retries: Retries{
			Initialize:  m.Retries(wifi.PhaseInitialize),
			Network:     m.Retries(wifi.PhaseNetwork),
			MqttConnect: m.Retries(wifi.PhaseMqttConnect),
			MqttPublish: m.Retries(wifi.PhaseMqttPublish),
		},
		Readings:  readingsOf(s.Readings()),
		Published: readingsOf(m.Published()),
	}
}

// Server serves the read-only HTTP status of the node. It only ever reads
// the published Status and never touches the manager.
type Server struct {
	Logger *slog.Logger
	Status *atomic.Pointer[Status]
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /sensors", s.handleSensors)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) send(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("server:encode-failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Status.Load()
	if st == nil {
		s.sendError(w, "status not available yet", http.StatusServiceUnavailable)
		return
	}
	s.send(w, st)
}

func (s *Server) handleSensors(w http.ResponseWriter, r *http.Request) {
	st := s.Status.Load()
	if st == nil {
		s.sendError(w, "status not available yet", http.StatusServiceUnavailable)
		return
	}
	s.send(w, st.Readings)
}
