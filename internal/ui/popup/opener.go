package popup

import (
	"focusboard/internal/ephemeral"
	"focusboard/internal/mirror"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// Opener creates floating windows for the mirror. Open must run on the
// fyne goroutine.
type Opener struct {
	app    fyne.App
	store  *ephemeral.Store
	logger *zap.Logger
}

// NewOpener returns an opener bound to app.
func NewOpener(app fyne.App, store *ephemeral.Store, logger *zap.Logger) *Opener {
	return &Opener{app: app, store: store, logger: logger}
}

// Open creates a window. Without a running app it reports mirror.ErrBlocked.
func (opener *Opener) Open(placement mirror.Placement) (mirror.Surface, error) {
	if opener.app == nil || opener.app.Driver() == nil {
		return nil, mirror.ErrBlocked
	}
	return NewWindow(opener.app, opener.store, opener.logger, placement), nil
}
