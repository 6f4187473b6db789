package emulator

import (
	"time"
)

// Budget is a fixed step accumulator. Wall clock time is added as debt,
// and each Take pays off one period.
type Budget struct {
	Period time.Duration
	Debt   time.Duration
}

// NewBudget creates a budget that pays out hz times per second.
func NewBudget(hz int) Budget {
	return Budget{Period: time.Second / time.Duration(hz)}
}

// Add elapsed time to the debt.
func (b *Budget) Add(elapsed time.Duration) {
	b.Debt += elapsed
}

// Take one period from the debt, if available.
func (b *Budget) Take() bool {
	if b.Debt < b.Period {
		return false
	}

	b.Debt -= b.Period
	return true
}

// Clamp limits the debt to a number of periods, and returns the number of
// whole periods discarded.
func (b *Budget) Clamp(periods int) (dropped int) {
	limit := time.Duration(periods) * b.Period
	if b.Debt <= limit {
		return
	}

	dropped = int((b.Debt - limit) / b.Period)
	b.Debt = limit
	return
}

// Due returns the time until the next period is available.
func (b *Budget) Due() time.Duration {
	return max(b.Period-b.Debt, 0)
}

// Scheduler drives the instruction, timer and presentation rates from a
// single clock.
type Scheduler struct {
	Clock   Clock
	MaxDebt int // Periods any budget may carry after an overrun.

	Instruction Budget
	Timer       Budget
	Render      Budget

	last time.Time
}

// NewScheduler creates a scheduler running instructions at hz, and
// presentation at fps.
func NewScheduler(clock Clock, hz, fps, maxDebt int) (s *Scheduler) {
	s = &Scheduler{
		Clock:       clock,
		MaxDebt:     maxDebt,
		Instruction: NewBudget(hz),
		Timer:       NewBudget(TIMER_HZ),
		Render:      NewBudget(fps),
	}

	s.Reset()

	return
}

// Reset discards all debt, and synchronizes to the clock.
func (s *Scheduler) Reset() {
	s.Instruction.Debt = 0
	s.Timer.Debt = 0
	s.Render.Debt = 0
	s.last = s.Clock.Now()
}

// Advance adds the time elapsed since the last call to every budget.
// If more than one instruction period was missed, the debt of each budget
// is clamped to MaxDebt periods, and an ErrOverrunTime with the number of
// dropped instructions is returned.
func (s *Scheduler) Advance() (err error) {
	now := s.Clock.Now()
	elapsed := max(now.Sub(s.last), 0)
	s.last = now

	s.Instruction.Add(elapsed)
	s.Timer.Add(elapsed)
	s.Render.Add(elapsed)

	if elapsed <= 2*s.Instruction.Period {
		return
	}

	dropped := s.Instruction.Clamp(s.MaxDebt)
	s.Timer.Clamp(s.MaxDebt)
	s.Render.Clamp(s.MaxDebt)

	err = ErrOverrunTime{Dropped: dropped}

	return
}

// Wait returns the time until any budget is next due.
func (s *Scheduler) Wait() time.Duration {
	return min(s.Instruction.Due(), s.Timer.Due(), s.Render.Due())
}
