package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Channel delivers an Event through one medium.
type Channel interface {
	Notify(event Event) error
}

// ChannelFunc adapts a function to Channel.
type ChannelFunc func(event Event) error

// Notify calls fn(event).
func (fn ChannelFunc) Notify(event Event) error {
	return fn(event)
}

// PermissionRequester is implemented by desktop channels that can report
// whether the host accepts notifications.
type PermissionRequester interface {
	RequestPermission(ctx context.Context) (bool, error)
}

// Channels holds the four delivery media in dispatch order.
type Channels struct {
	Sound   Channel
	Banner  Channel
	Toast   Channel
	Desktop Channel
}

// Dispatcher fans a single Event out to every configured channel.
type Dispatcher struct {
	mu         sync.Mutex
	logger     *zap.Logger
	channels   Channels
	permission Permission
	onChange   func(Permission)
}

// NewDispatcher creates a dispatcher with the given initial permission.
func NewDispatcher(logger *zap.Logger, channels Channels, permission Permission) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !permission.Valid() {
		permission = PermissionDefault
	}
	return &Dispatcher{
		logger:     logger.Named("notify"),
		channels:   channels,
		permission: permission,
	}
}

// SetBanner attaches the in-window banner channel.
func (dispatcher *Dispatcher) SetBanner(channel Channel) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.channels.Banner = channel
}

// SetToast attaches the toast channel.
func (dispatcher *Dispatcher) SetToast(channel Channel) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.channels.Toast = channel
}

// SetOnPermissionChange registers a hook fired after RequestPermission settles.
func (dispatcher *Dispatcher) SetOnPermissionChange(handler func(Permission)) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.onChange = handler
}

// Permission returns the current desktop notification permission.
func (dispatcher *Dispatcher) Permission() Permission {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	return dispatcher.permission
}

// Dispatch fires sound, banner, toast and, when permitted, a desktop
// notification. Channel failures are logged and never stop later channels.
func (dispatcher *Dispatcher) Dispatch(event Event) {
	dispatcher.mu.Lock()
	channels := dispatcher.channels
	granted := dispatcher.permission == PermissionGranted
	dispatcher.mu.Unlock()

	dispatcher.deliver("sound", channels.Sound, event)
	dispatcher.deliver("banner", channels.Banner, event)
	dispatcher.deliver("toast", channels.Toast, event)
	if granted {
		dispatcher.deliver("desktop", channels.Desktop, event)
	}
}

// RequestPermission asks the desktop channel whether notifications can be
// shown and reports the outcome through the toast channel. Denial is a normal
// outcome, not an error.
func (dispatcher *Dispatcher) RequestPermission(ctx context.Context) Permission {
	dispatcher.mu.Lock()
	channels := dispatcher.channels
	dispatcher.mu.Unlock()

	permission := PermissionDenied
	if requester, ok := channels.Desktop.(PermissionRequester); ok {
		granted, err := requester.RequestPermission(ctx)
		if err != nil {
			dispatcher.logger.Info("desktop notifications unavailable", zap.Error(err))
		}
		if granted {
			permission = PermissionGranted
		}
	}

	dispatcher.mu.Lock()
	dispatcher.permission = permission
	onChange := dispatcher.onChange
	dispatcher.mu.Unlock()

	if permission == PermissionGranted {
		dispatcher.deliver("toast", channels.Toast, Event{
			Title: "Notifications Enabled! 🔔",
			Body:  "You'll get reminders even when working in other windows.",
			Tag:   "permission",
		})
	} else {
		dispatcher.deliver("toast", channels.Toast, Event{
			Title: "Notifications Blocked",
			Body:  "Enable notifications for Focus Board in your system settings to get reminders.",
			Tag:   "permission",
		})
	}
	if onChange != nil {
		onChange(permission)
	}
	return permission
}

func (dispatcher *Dispatcher) deliver(name string, channel Channel, event Event) {
	if channel == nil {
		return
	}
	if err := channel.Notify(event); err != nil {
		dispatcher.logger.Warn("notification channel failed",
			zap.String("channel", name),
			zap.String("tag", event.Tag),
			zap.Error(err))
	}
}
