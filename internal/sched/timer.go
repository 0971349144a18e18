package sched

import "time"

// Timer is a repeating countdown. Each Tick reports at most one expiry, no
// matter how many periods the delta spans; time beyond the last whole period
// is carried into the next cycle and whole periods in excess are dropped.
type Timer struct {
	period  time.Duration
	elapsed time.Duration
}

// NewTimer creates a repeating timer. period must be positive.
func NewTimer(period time.Duration) *Timer {
	if period <= 0 {
		panic("sched: timer period must be positive")
	}
	return &Timer{period: period}
}

// Tick advances the timer by dt and reports whether it expired.
func (t *Timer) Tick(dt time.Duration) bool {
	t.elapsed += dt
	if t.elapsed < t.period {
		return false
	}
	t.elapsed %= t.period
	return true
}

// Period returns the timer's period.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Elapsed returns the time accumulated toward the next expiry.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Reset clears accumulated time.
func (t *Timer) Reset() {
	t.elapsed = 0
}
