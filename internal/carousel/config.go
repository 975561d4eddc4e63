package carousel

import "time"

// Config holds the tuning parameters of a Controller. Distances are in
// terminal columns.
type Config struct {
	// TickInterval is the period of the auto-advance timer.
	TickInterval time.Duration
	// Step is how far one auto-advance tick moves the strip.
	Step int
	// Sensitivity multiplies pointer travel while dragging.
	Sensitivity float64
	// Cooldown is the delay after a drag or step before auto-advance resumes.
	Cooldown time.Duration
	// StepDistance is how far a step button moves the strip.
	StepDistance int
	// StepDuration is the length of the step animation.
	StepDuration time.Duration
	// FrameInterval is the period between step animation frames.
	FrameInterval time.Duration
	// SettleDelay postpones the first auto-advance after new items arrive so
	// the render surface can report its geometry first.
	SettleDelay time.Duration
	// CardWidth and CardGap define the fixed card layout.
	CardWidth int
	CardGap   int
	// PauseOnHover suspends auto-advance while the pointer rests on the strip.
	PauseOnHover bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TickInterval:  50 * time.Millisecond,
		Step:          1,
		Sensitivity:   2,
		Cooldown:      500 * time.Millisecond,
		StepDistance:  48,
		StepDuration:  300 * time.Millisecond,
		FrameInterval: 16 * time.Millisecond,
		SettleDelay:   250 * time.Millisecond,
		CardWidth:     24,
		CardGap:       2,
	}
}

// withDefaults replaces unusable zero or negative values with defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.Step <= 0 {
		c.Step = d.Step
	}
	if c.Sensitivity <= 0 {
		c.Sensitivity = d.Sensitivity
	}
	if c.Cooldown < 0 {
		c.Cooldown = 0
	}
	if c.StepDistance <= 0 {
		c.StepDistance = d.StepDistance
	}
	if c.StepDuration < 0 {
		c.StepDuration = 0
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.SettleDelay < 0 {
		c.SettleDelay = 0
	}
	if c.CardWidth <= 0 {
		c.CardWidth = d.CardWidth
	}
	if c.CardGap < 0 {
		c.CardGap = 0
	}
	return c
}
