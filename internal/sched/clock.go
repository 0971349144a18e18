// Package sched drives simulation systems on two kinds of cadence: once per
// frame, and at fixed real-time periods decoupled from the frame rate.
package sched

import (
	"sync"
	"time"
)

// Clock is the wall-clock source a frontend reads frame deltas from.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Tests and headless runs use it to make
// frame deltas exact.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// DeltaTimer measures the time between successive frames.
type DeltaTimer struct {
	clock    Clock
	last     time.Time
	started  bool
	maxDelta time.Duration
}

// NewDeltaTimer creates a timer reading clock. Deltas longer than maxDelta are
// clamped so a stalled frontend does not feed one huge step into the physics;
// zero disables the clamp.
func NewDeltaTimer(clock Clock, maxDelta time.Duration) *DeltaTimer {
	return &DeltaTimer{clock: clock, maxDelta: maxDelta}
}

// Delta returns the time elapsed since the previous call. The first call returns zero.
func (d *DeltaTimer) Delta() time.Duration {
	now := d.clock.Now()
	if !d.started {
		d.started = true
		d.last = now
		return 0
	}
	dt := now.Sub(d.last)
	d.last = now
	if dt < 0 {
		dt = 0
	}
	if d.maxDelta > 0 && dt > d.maxDelta {
		dt = d.maxDelta
	}
	return dt
}

// Reset makes the next Delta call return zero, e.g. after a pause.
func (d *DeltaTimer) Reset() {
	d.started = false
}
