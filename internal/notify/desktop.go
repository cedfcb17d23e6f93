package notify

import (
	"context"

	"fyne.io/fyne/v2"
)

// FyneNotifier sends desktop notifications through the fyne driver. It cannot
// replace an earlier notification, so tags are ignored.
type FyneNotifier struct {
	app fyne.App
}

// NewFyneNotifier wraps app.
func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

// Notify shows event as a desktop notification.
func (notifier *FyneNotifier) Notify(event Event) error {
	notifier.app.SendNotification(fyne.NewNotification(event.Title, event.Body))
	return nil
}

// RequestPermission always succeeds; the fyne driver has no permission model.
func (notifier *FyneNotifier) RequestPermission(context.Context) (bool, error) {
	return true, nil
}
