package model

import "time"

const (
	DefaultWorkDuration  = 45 * time.Minute
	DefaultBreakDuration = 15 * time.Minute
	DefaultTickInterval  = time.Second
)

// CycleConfig contains runtime settings for the work/break cycle scheduler.
type CycleConfig struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration
	TickInterval  time.Duration

	// PauseExtendsPhase moves the phase deadline by the time spent paused.
	// When false the deadline stays fixed at phase start.
	PauseExtendsPhase bool
}

// DefaultCycleConfig returns a 45 minute work / 15 minute break cycle.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		WorkDuration:  DefaultWorkDuration,
		BreakDuration: DefaultBreakDuration,
		TickInterval:  DefaultTickInterval,
	}
}

// Normalized replaces non-positive durations with defaults.
func (config CycleConfig) Normalized() CycleConfig {
	if config.WorkDuration <= 0 {
		config.WorkDuration = DefaultWorkDuration
	}
	if config.BreakDuration <= 0 {
		config.BreakDuration = DefaultBreakDuration
	}
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	return config
}

// PhaseDuration returns the configured length of a work or break phase.
func (config CycleConfig) PhaseDuration(work bool) time.Duration {
	if work {
		return config.WorkDuration
	}
	return config.BreakDuration
}
