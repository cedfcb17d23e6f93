//go:build linux

package notify

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/godbus/dbus/v5"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
)

// DBusNotifier talks to the freedesktop notification service. Notifications
// sharing a tag reuse the id of the previous one so the server replaces it.
type DBusNotifier struct {
	mu       sync.Mutex
	appName  string
	object   dbus.BusObject
	replaces map[string]uint32
}

// NewDBusNotifier creates a notifier; the session bus is dialled lazily.
func NewDBusNotifier(appName string) *DBusNotifier {
	return &DBusNotifier{
		appName:  appName,
		replaces: make(map[string]uint32),
	}
}

// NewDesktop returns the preferred desktop channel for this platform.
func NewDesktop(app fyne.App, appName string) Channel {
	if _, err := dbus.SessionBus(); err != nil {
		return NewFyneNotifier(app)
	}
	return NewDBusNotifier(appName)
}

// Notify sends event, replacing any live notification with the same tag.
func (notifier *DBusNotifier) Notify(event Event) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	object, err := notifier.busObjectLocked()
	if err != nil {
		return err
	}

	hints := map[string]dbus.Variant{}
	if event.Tag != "" {
		hints["category"] = dbus.MakeVariant(event.Tag)
	}
	call := object.Call(notificationsService+".Notify", 0,
		notifier.appName,
		notifier.replaces[event.Tag],
		"",
		event.Title,
		event.Body,
		[]string{},
		hints,
		int32(-1),
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("dbus notify reply: %w", err)
	}
	if event.Tag != "" {
		notifier.replaces[event.Tag] = id
	}
	return nil
}

// RequestPermission reports whether a notification server answers on the bus.
func (notifier *DBusNotifier) RequestPermission(ctx context.Context) (bool, error) {
	notifier.mu.Lock()
	object, err := notifier.busObjectLocked()
	notifier.mu.Unlock()
	if err != nil {
		return false, err
	}

	var capabilities []string
	call := object.CallWithContext(ctx, notificationsService+".GetCapabilities", 0)
	if call.Err != nil {
		return false, fmt.Errorf("dbus capabilities: %w", call.Err)
	}
	if err := call.Store(&capabilities); err != nil {
		return false, fmt.Errorf("dbus capabilities reply: %w", err)
	}
	return true, nil
}

func (notifier *DBusNotifier) busObjectLocked() (dbus.BusObject, error) {
	if notifier.object != nil {
		return notifier.object, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus session bus: %w", err)
	}
	notifier.object = conn.Object(notificationsService, dbus.ObjectPath(notificationsPath))
	return notifier.object, nil
}
