package model

import "time"

// Mode is the active countdown kind.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
	ModeWater Mode = "water"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeBreak, ModeWater}

// Valid reports whether mode is one of the known modes.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeFocus, ModeBreak, ModeWater:
		return true
	default:
		return false
	}
}

// Label returns the human-readable mode title.
func (mode Mode) Label() string {
	switch mode {
	case ModeBreak:
		return "Break Time"
	case ModeWater:
		return "Water Break"
	default:
		return "Focus Time"
	}
}

// TimerConfig contains the duration table for the timer state machine.
type TimerConfig struct {
	Focus time.Duration
	Break time.Duration
	Water time.Duration

	// HydrationInterval is the elapsed focus time between water reminders.
	HydrationInterval time.Duration
}

// DefaultTimerConfig returns the stock durations.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Focus:             45 * time.Minute,
		Break:             5 * time.Minute,
		Water:             2 * time.Minute,
		HydrationInterval: 30 * time.Minute,
	}
}

// DurationFor returns the configured duration for mode.
func (config TimerConfig) DurationFor(mode Mode) time.Duration {
	switch mode {
	case ModeBreak:
		return config.Break
	case ModeWater:
		return config.Water
	default:
		return config.Focus
	}
}

// SecondsFor returns the configured duration for mode in whole seconds, at least one.
func (config TimerConfig) SecondsFor(mode Mode) int {
	seconds := int(config.DurationFor(mode) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// HydrationMinutes returns the hydration interval in whole minutes; zero disables it.
func (config TimerConfig) HydrationMinutes() int {
	if config.HydrationInterval < time.Minute {
		return 0
	}
	return int(config.HydrationInterval / time.Minute)
}
