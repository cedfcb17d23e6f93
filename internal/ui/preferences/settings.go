package preferences

import (
	"time"

	"focusboard/internal/core/model"
	"focusboard/internal/notify"
)

// DefaultWebAddress is where the browser mirror listens unless configured.
const DefaultWebAddress = "127.0.0.1:7420"

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration     time.Duration
	BreakDuration     time.Duration
	WaterDuration     time.Duration
	HydrationInterval time.Duration

	Notifications notify.Permission

	// WebAddress is the loopback address of the browser mirror; empty disables it.
	WebAddress string
}

// DefaultSettings returns default settings for Focus Board.
func DefaultSettings() Settings {
	timer := model.DefaultTimerConfig()
	return Settings{
		FocusDuration:     timer.Focus,
		BreakDuration:     timer.Break,
		WaterDuration:     timer.Water,
		HydrationInterval: timer.HydrationInterval,
		Notifications:     notify.PermissionDefault,
		WebAddress:        DefaultWebAddress,
	}
}

// TimerConfig converts settings to the timer duration table.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Focus:             settings.FocusDuration,
		Break:             settings.BreakDuration,
		Water:             settings.WaterDuration,
		HydrationInterval: settings.HydrationInterval,
	}
}
