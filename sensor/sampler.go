package sensor

import (
	"io"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/weaver-sensing/weaver/softtimer"
)

// DefaultInterval is the measurement period of the node.
const DefaultInterval = 5 * time.Second

// EnvSensor reads temperature, humidity and pressure.
// *bmxx80.Dev satisfies it.
type EnvSensor interface {
	Sense(e *physic.Env) error
}

// AirSensor reads air quality and accepts environment compensation.
// *CCS811 satisfies it.
type AirSensor interface {
	DataAvailable() bool
	SetEnvironment(humidity, temperature float32) (bool, error)
	Read() (AirQuality, error)
}

// Sampler refreshes a Snapshot once per interval from an environmental
// and an air-quality sensor. Either sensor may be nil. It is polled from
// the main loop and is not safe for concurrent use.
type Sampler struct {
	env    EnvSensor
	air    AirSensor
	timer  *softtimer.Timer
	logger *slog.Logger
	latest Snapshot
}

// NewSampler returns a sampler whose first measurement happens one
// interval after creation. A nil logger discards output.
func NewSampler(env EnvSensor, air AirSensor, clock softtimer.Clock, interval time.Duration, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Sampler{
		env:    env,
		air:    air,
		timer:  softtimer.New(clock, interval),
		logger: logger,
	}
	s.timer.Start()
	return s
}

// Readings returns the latest snapshot.
func (s *Sampler) Readings() Snapshot { return s.latest }

// Poll takes a measurement if the interval elapsed and reports whether it
// did. Failed reads keep the previous values.
func (s *Sampler) Poll() bool {
	if !s.timer.Expired() {
		return false
	}
	s.sample()
	s.timer.Start()
	return true
}

func (s *Sampler) sample() {
	if s.env != nil {
		var e physic.Env
		if err := s.env.Sense(&e); err != nil {
			s.logger.Warn("sensor:env-read-failed", "error", err)
		} else {
			s.latest = s.latest.withEnv(e)
			if s.air != nil {
				if _, err := s.air.SetEnvironment(s.latest.Humidity, s.latest.Temperature); err != nil {
					s.logger.Warn("sensor:env-forward-failed", "error", err)
				}
			}
		}
	}

	if s.air != nil && s.air.DataAvailable() {
		aq, err := s.air.Read()
		if err != nil {
			s.logger.Warn("sensor:air-read-failed", "error", err)
			return
		}
		s.latest.ECO2 = aq.ECO2
		s.latest.TVOC = aq.TVOC
	}
	s.logger.Debug("sensor:sample", "temperature", s.latest.Temperature, "humidity", s.latest.Humidity,
		"pressure", s.latest.Pressure, "eco2", s.latest.ECO2, "tvoc", s.latest.TVOC)
}
