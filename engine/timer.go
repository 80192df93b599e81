package engine

import "time"

type TimerMode int

const (
	// Once timers finish a single time and stay finished until Reset.
	Once TimerMode = iota
	// Repeating timers restart on completion and carry any overshoot into the next cycle.
	Repeating
)

// Timer counts delta time toward a duration. It does nothing on its own; call Tick once per frame.
type Timer struct {
	duration      time.Duration
	elapsed       time.Duration
	mode          TimerMode
	paused        bool
	finished      bool
	timesFinished int
}

func NewTimer(duration time.Duration, mode TimerMode) *Timer {
	return &Timer{duration: duration, mode: mode}
}

// Tick advances the timer by delta and returns it, so calls can be chained.
func (t *Timer) Tick(delta time.Duration) *Timer {
	t.timesFinished = 0
	if t.paused {
		if t.mode == Repeating {
			t.finished = false
		}
		return t
	}
	if t.mode == Once && t.finished {
		return t
	}

	t.elapsed += max(delta, 0)
	if t.elapsed < t.duration {
		t.finished = false
		return t
	}

	t.finished = true
	if t.mode == Once {
		t.timesFinished = 1
		t.elapsed = t.duration
		return t
	}

	if t.duration <= 0 {
		t.timesFinished = 1
		t.elapsed = 0
		return t
	}
	t.timesFinished = int(t.elapsed / t.duration)
	t.elapsed %= t.duration
	return t
}

// JustFinished reports whether the last Tick completed the timer at least once.
func (t *Timer) JustFinished() bool {
	return t.timesFinished > 0
}

// Finished reports whether the timer is finished. Repeating timers are only
// finished on the tick that completes them.
func (t *Timer) Finished() bool {
	return t.finished
}

// TimesFinishedThisTick is how many cycles the last Tick completed.
func (t *Timer) TimesFinishedThisTick() int {
	return t.timesFinished
}

func (t *Timer) Elapsed() time.Duration   { return t.elapsed }
func (t *Timer) Duration() time.Duration  { return t.duration }
func (t *Timer) Remaining() time.Duration { return t.duration - t.elapsed }
func (t *Timer) Mode() TimerMode          { return t.mode }
func (t *Timer) Paused() bool             { return t.paused }
func (t *Timer) Pause()                   { t.paused = true }
func (t *Timer) Unpause()                 { t.paused = false }

// Reset rewinds the timer to zero without changing its pause state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.timesFinished = 0
}
