// Package softtimer implements polled timeouts over a free-running
// millisecond tick.
package softtimer

import (
	"sync/atomic"
	"time"
)

// Clock is a free-running millisecond counter. It is allowed to wrap
// around at the uint32 boundary.
type Clock interface {
	Millis() uint32
}

// Timer reports whether a fixed interval has elapsed since the last Start.
// A Timer that was never started measures from tick zero.
type Timer struct {
	clock    Clock
	start    uint32
	interval uint32
}

// New returns a timer that expires interval after each Start. The interval
// is truncated to whole milliseconds.
func New(clock Clock, interval time.Duration) *Timer {
	return &Timer{
		clock:    clock,
		interval: uint32(interval / time.Millisecond),
	}
}

// Start captures the current tick. Calling Start again restarts the timer.
func (t *Timer) Start() {
	t.start = t.clock.Millis()
}

// Expired reports whether at least the interval has elapsed since Start.
// Unsigned subtraction keeps the result correct across counter overflow.
func (t *Timer) Expired() bool {
	return t.clock.Millis()-t.start >= t.interval
}

// Interval returns the expiry interval.
func (t *Timer) Interval() time.Duration {
	return time.Duration(t.interval) * time.Millisecond
}

// SystemClock derives the tick from the monotonic system clock.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock returns a clock whose tick is zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

// Millis returns the elapsed milliseconds, truncated to 32 bits.
func (c *SystemClock) Millis() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

// ManualClock is a Clock that only moves when told to.
// It is safe for concurrent use.
type ManualClock struct {
	now atomic.Uint32
}

// Millis returns the current tick.
func (c *ManualClock) Millis() uint32 {
	return c.now.Load()
}

// Set moves the tick to ms.
func (c *ManualClock) Set(ms uint32) {
	c.now.Store(ms)
}

// Advance moves the tick forward by d, wrapping at the uint32 boundary.
func (c *ManualClock) Advance(d time.Duration) {
	c.now.Add(uint32(d / time.Millisecond))
}
