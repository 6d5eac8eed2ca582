// Package sensor samples the node's environmental and air-quality sensors
// and exposes the latest readings as a Snapshot.
package sensor

import "periph.io/x/conn/v3/physic"

// Snapshot is one set of readings.
type Snapshot struct {
	Temperature float32 // °C
	Humidity    float32 // %RH
	Pressure    float32 // Pa
	TVOC        uint16  // ppb
	ECO2        uint16  // ppm
}

// Changed reports whether any reading differs from prev. Floats are
// compared exactly.
func (s Snapshot) Changed(prev Snapshot) bool {
	return s.Temperature != prev.Temperature ||
		s.Humidity != prev.Humidity ||
		s.Pressure != prev.Pressure ||
		s.ECO2 != prev.ECO2 ||
		s.TVOC != prev.TVOC
}

// PressureHPa returns the pressure in hectopascal.
func (s Snapshot) PressureHPa() float64 {
	return float64(s.Pressure / 100)
}

// Fixed is a source that always returns the same readings. It stands in
// for the sampler on nodes without sensors.
type Fixed Snapshot

func (f Fixed) Readings() Snapshot { return Snapshot(f) }

// withEnv copies the environmental part of e into s.
func (s Snapshot) withEnv(e physic.Env) Snapshot {
	s.Temperature = float32(float64(e.Temperature-physic.ZeroCelsius) / float64(physic.Kelvin))
	s.Humidity = float32(float64(e.Humidity) / float64(physic.PercentRH))
	s.Pressure = float32(float64(e.Pressure) / float64(physic.Pascal))
	return s
}
