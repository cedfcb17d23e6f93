package timekeeper

import (
	"time"

	"focusboard/internal/core/model"
	"focusboard/internal/notify"
)

// State is a copy of the countdown owned by a TimeKeeper.
type State struct {
	Mode             model.Mode
	RemainingSeconds int
	TotalSeconds     int
	Running          bool

	// LastWaterReminderMinute is the elapsed minute at which the last
	// hydration reminder fired; zero means none in this session.
	LastWaterReminderMinute int
}

// Remaining returns the remaining time as a duration.
func (state State) Remaining() time.Duration {
	return time.Duration(state.RemainingSeconds) * time.Second
}

// Progress returns the elapsed fraction of the current mode in [0, 1].
func (state State) Progress() float64 {
	if state.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(state.TotalSeconds-state.RemainingSeconds) / float64(state.TotalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventReminder    EventType = "reminder"
)

// ReminderKind identifies what crossed a threshold.
type ReminderKind string

const (
	ReminderHydration ReminderKind = "hydration"
	ReminderStretch   ReminderKind = "stretch"
	ReminderComplete  ReminderKind = "complete"
)

// Reminder is a threshold crossing together with its notification copy.
type Reminder struct {
	Kind         ReminderKind
	Mode         model.Mode
	Notification notify.Event
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	State    State
	Reminder Reminder
	At       time.Time
}
