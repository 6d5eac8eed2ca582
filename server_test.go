package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestServer(st *Status) *Server {
	s := &Server{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Status: &atomic.Pointer[Status]{},
	}
	if st != nil {
		s.Status.Store(st)
	}
	return s
}

func TestServer(t *testing.T) {
	status := &Status{
		State:         "MqttConnected",
		StateCode:     10,
		NetworkSSID:   "home",
		BrokerAddress: "192.168.0.218",
		BrokerPort:    8080,
		Readings:      Readings{Temperature: 23.5, Humidity: 41.25, Pressure: 1013.25, TVOC: 12, ECO2: 415},
	}

	t.Run("Status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(status).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var got Status
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.State != "MqttConnected" || got.StateCode != 10 || got.BrokerPort != 8080 {
			t.Errorf("unexpected status %+v", got)
		}
	})

	t.Run("Status omits credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(status).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		var fields map[string]any
		json.NewDecoder(rec.Body).Decode(&fields)
		for _, key := range []string{"network_password", "broker_token"} {
			if _, ok := fields[key]; ok {
				t.Errorf("status exposes %s", key)
			}
		}
	})

	t.Run("Sensors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(status).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sensors", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got Readings
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != status.Readings {
			t.Errorf("expected %+v, got %+v", status.Readings, got)
		}
	})

	t.Run("Not yet published", func(t *testing.T) {
		for _, path := range []string{"/status", "/sensors"} {
			rec := httptest.NewRecorder()
			newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusServiceUnavailable {
				t.Errorf("%s: expected 503, got %d", path, rec.Code)
			}
		}
	})

	t.Run("Read only", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(status).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
