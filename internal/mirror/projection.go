package mirror

import (
	"encoding/json"
	"fmt"

	"focusboard/internal/core/model"
	"focusboard/internal/core/timekeeper"
)

const (
	// StateKey is the ephemeral store key holding the latest projection.
	StateKey = "timerPopupState"
	// LiveKey holds the latest timer projection whether or not a surface is
	// open. IsOpen reports the floating window.
	LiveKey = "timerLiveState"
	// MessageTimerUpdate is the type of direct update messages.
	MessageTimerUpdate = "TIMER_UPDATE"
)

// Projection is the read-only timer view handed to floating surfaces.
type Projection struct {
	IsOpen    bool       `json:"isOpen"`
	TimeLeft  int        `json:"timeLeft"`
	IsRunning bool       `json:"isRunning"`
	Mode      model.Mode `json:"mode"`
}

// DefaultProjection is shown by a surface that loads before any state exists.
func DefaultProjection() Projection {
	return Projection{
		IsOpen:   true,
		TimeLeft: 45 * 60,
		Mode:     model.ModeFocus,
	}
}

// FromState projects a timer snapshot.
func FromState(state timekeeper.State) Projection {
	return Projection{
		IsOpen:    true,
		TimeLeft:  state.RemainingSeconds,
		IsRunning: state.Running,
		Mode:      state.Mode,
	}
}

// Message is the envelope delivered directly to a surface.
type Message struct {
	Type  string     `json:"type"`
	State Projection `json:"state"`
}

// UpdateMessage wraps state in a TIMER_UPDATE envelope.
func UpdateMessage(state Projection) Message {
	return Message{Type: MessageTimerUpdate, State: state}
}

// Encode serializes a projection for the ephemeral store.
func Encode(state Projection) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode projection: %w", err)
	}
	return data, nil
}

// Decode parses a stored projection, rejecting unknown modes.
func Decode(data []byte) (Projection, error) {
	var state Projection
	if err := json.Unmarshal(data, &state); err != nil {
		return Projection{}, fmt.Errorf("decode projection: %w", err)
	}
	if !state.Mode.Valid() {
		return Projection{}, fmt.Errorf("decode projection: unknown mode %q", state.Mode)
	}
	if state.TimeLeft < 0 {
		state.TimeLeft = 0
	}
	return state, nil
}
