package sched_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/sched"
)

type state struct {
	enabled bool
	log     []string
}

func record(name string) sched.SystemFunc[*state] {
	return func(s *state, _ sched.Frame) {
		s.log = append(s.log, name)
	}
}

func enabled(s *state) bool { return s.enabled }

func TestTimer(t *testing.T) {
	t.Run("fires when the period elapses", func(t *testing.T) {
		tm := sched.NewTimer(100 * time.Millisecond)
		assert.Equal(t, 100*time.Millisecond, tm.Period())
		assert.False(t, tm.Tick(60*time.Millisecond))
		assert.True(t, tm.Tick(40*time.Millisecond))
		assert.Zero(t, tm.Elapsed())
	})

	t.Run("fires once for a delta spanning several periods", func(t *testing.T) {
		tm := sched.NewTimer(100 * time.Millisecond)
		assert.True(t, tm.Tick(350*time.Millisecond))
		assert.Equal(t, 50*time.Millisecond, tm.Elapsed(), "remainder carries, whole periods are dropped")
		assert.False(t, tm.Tick(40*time.Millisecond))
		assert.True(t, tm.Tick(10*time.Millisecond))
	})

	t.Run("reset drops accumulated time", func(t *testing.T) {
		tm := sched.NewTimer(100 * time.Millisecond)
		tm.Tick(90 * time.Millisecond)
		tm.Reset()
		assert.Zero(t, tm.Elapsed())
		assert.False(t, tm.Tick(20*time.Millisecond))
	})

	t.Run("rejects non-positive periods", func(t *testing.T) {
		assert.Panics(t, func() { sched.NewTimer(0) })
	})
}

func TestSchedulerOrder(t *testing.T) {
	s := sched.New[*state]()
	s.Register("a", sched.EveryFrame(), record("a"))
	s.Register("fixed", sched.Every(time.Second), record("fixed"))
	s.Register("b", sched.EveryFrame(), record("b"))

	st := &state{}
	s.Step(st, 500*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, st.log)

	st.log = nil
	s.Step(st, 500*time.Millisecond)
	assert.Equal(t, []string{"a", "fixed", "b"}, st.log, "fixed systems run in declared position")

	assert.Equal(t, []string{"a", "fixed", "b"}, s.Systems())
}

func TestSchedulerRunIf(t *testing.T) {
	s := sched.New[*state]()
	s.Register("gated", sched.EveryFrame(), record("gated"), sched.RunIf(enabled))
	s.Register("always", sched.EveryFrame(), record("always"))

	st := &state{}
	s.Step(st, time.Millisecond)
	assert.Equal(t, []string{"always"}, st.log)

	st.enabled = true
	st.log = nil
	s.Step(st, time.Millisecond)
	assert.Equal(t, []string{"gated", "always"}, st.log)
}

func TestSchedulerPredicateSeesEarlierSystems(t *testing.T) {
	s := sched.New[*state]()
	s.Register("enable", sched.EveryFrame(), func(st *state, _ sched.Frame) { st.enabled = true })
	s.Register("gated", sched.EveryFrame(), record("gated"), sched.RunIf(enabled))

	st := &state{}
	s.Step(st, time.Millisecond)
	assert.Equal(t, []string{"gated"}, st.log)
}

func TestSchedulerFixedCadenceAtMostOncePerFrame(t *testing.T) {
	s := sched.New[*state]()
	s.Register("fast", sched.Every(10*time.Millisecond), record("fast"))

	st := &state{}
	s.Step(st, 95*time.Millisecond)
	assert.Equal(t, []string{"fast"}, st.log, "a long frame fires once, with no catch-up loop")

	st.log = nil
	s.Step(st, 4*time.Millisecond)
	assert.Empty(t, st.log)
	s.Step(st, time.Millisecond)
	assert.Equal(t, []string{"fast"}, st.log)
}

func TestSchedulerSharedPeriodFiresTogether(t *testing.T) {
	s := sched.New[*state]()
	s.Register("retire", sched.Every(time.Second), record("retire"))
	s.Register("spawn", sched.Every(time.Second), record("spawn"))
	s.Register("collide", sched.Every(33*time.Millisecond), record("collide"))

	st := &state{}
	for range 100 {
		s.Step(st, 10*time.Millisecond)
	}

	counts := map[string]int{}
	for _, name := range st.log {
		counts[name]++
	}
	assert.Equal(t, 1, counts["retire"])
	assert.Equal(t, 1, counts["spawn"])
	assert.Equal(t, 30, counts["collide"], "floor(1000ms / 33ms)")
}

func TestSchedulerTimersAdvanceWhileGated(t *testing.T) {
	s := sched.New[*state]()
	s.Register("gated", sched.Every(time.Second), record("gated"), sched.RunIf(enabled))

	st := &state{}
	s.Step(st, 900*time.Millisecond)
	st.enabled = true
	s.Step(st, 100*time.Millisecond)
	assert.Equal(t, []string{"gated"}, st.log)
}

func TestSchedulerFrame(t *testing.T) {
	s := sched.New[*state]()
	var seen []sched.Frame
	s.Register("observe", sched.EveryFrame(), func(_ *state, f sched.Frame) {
		seen = append(seen, f)
	})

	st := &state{}
	s.Step(st, 20*time.Millisecond)
	s.Step(st, 30*time.Millisecond)
	s.Step(st, -5*time.Millisecond)

	require.Len(t, seen, 3)
	assert.Equal(t, uint64(1), seen[0].Index)
	assert.Equal(t, 50*time.Millisecond, seen[1].Elapsed)
	assert.InDelta(t, 0.03, seen[1].DeltaSeconds(), 1e-12)
	assert.Zero(t, seen[2].Delta, "negative deltas are clamped")
	assert.Equal(t, s.Frame(), seen[2])
}

func TestSchedulerStats(t *testing.T) {
	s := sched.New[*state]()
	s.Register("a", sched.EveryFrame(), record("a"))
	s.Register("never", sched.EveryFrame(), record("never"), sched.RunIf(enabled))

	st := &state{}
	for range 4 {
		s.Step(st, time.Millisecond)
	}

	stats := s.Stats()
	assert.Equal(t, uint64(4), stats.Frames)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(4), stats.TotalExecutions)
	assert.Equal(t, "a", stats.Systems[0].Name)
	assert.Equal(t, int64(4), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(0), stats.Systems[1].ExecutionCount)
	assert.Zero(t, stats.Systems[1].MinDuration)
}

func TestDeltaTimer(t *testing.T) {
	clock := sched.NewManualClock(time.Unix(0, 0))
	dt := sched.NewDeltaTimer(clock, 250*time.Millisecond)

	assert.Zero(t, dt.Delta(), "first call has nothing to measure against")

	clock.Advance(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, dt.Delta())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 250*time.Millisecond, dt.Delta(), "stalls are clamped")

	dt.Reset()
	clock.Advance(time.Second)
	assert.Zero(t, dt.Delta())
}
