package io

// Timer holds the delay and sound countdown counters. Both count down at
// 60Hz; only the scheduler calls Tick.
type Timer struct {
	Delay uint8
	Sound uint8
}

// Reset zeroes both counters.
func (tm *Timer) Reset() {
	tm.Delay = 0
	tm.Sound = 0
}

// Tick decrements each non-zero counter, and returns the tone state after
// the decrement.
func (tm *Timer) Tick() (tone bool) {
	if tm.Delay > 0 {
		tm.Delay--
	}
	if tm.Sound > 0 {
		tm.Sound--
	}

	return tm.ToneActive()
}

// ToneActive is true while the sound counter is non-zero.
func (tm *Timer) ToneActive() bool {
	return tm.Sound > 0
}
