package garden

import "time"

// Clock is the time source of an animation session.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time { return time.Now() }

// StepClock is a manual clock that moves only when advanced. Headless export
// and tests use it to produce frames at exact 1/FPS intervals.
type StepClock struct {
	now  time.Time
	step time.Duration
}

// NewStepClock returns a clock starting at the Unix epoch that advances by
// step on each call to Advance.
func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{now: time.Unix(0, 0), step: step}
}

// Now implements Clock.
func (c *StepClock) Now() time.Time { return c.now }

// Advance moves the clock forward by one step.
func (c *StepClock) Advance() { c.now = c.now.Add(c.step) }

// Set moves the clock to an absolute offset from its origin.
func (c *StepClock) Set(d time.Duration) { c.now = time.Unix(0, 0).Add(d) }
