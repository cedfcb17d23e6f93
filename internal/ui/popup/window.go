// Package popup renders the floating timer window. It only displays the
// projection it receives and never writes back.
package popup

import (
	"image/color"
	"sync"
	"sync/atomic"

	"focusboard/internal/ephemeral"
	"focusboard/internal/mirror"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"
)

const (
	windowTitle = "Focus Timer"
	inboxSize   = 8
	watchSize   = 8
)

// Window is a floating timer surface.
type Window struct {
	window     fyne.Window
	store      *ephemeral.Store
	logger     *zap.Logger
	background *canvas.Rectangle
	label      *canvas.Text
	clock      *canvas.Text
	status     *canvas.Text
	footer     *canvas.Text

	inbox    chan mirror.Message
	changes  <-chan ephemeral.Change
	unwatch  func()
	done     chan struct{}
	stopOnce sync.Once
	closed   atomic.Bool

	mu    sync.Mutex
	state mirror.Projection
}

// NewWindow creates and shows a floating window sized by placement.
func NewWindow(app fyne.App, store *ephemeral.Store, logger *zap.Logger, placement mirror.Placement) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	window := app.NewWindow(windowTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.Transparent)

	label := canvas.NewText("", color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff})
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = 14

	clock := canvas.NewText("--:--", color.White)
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = 56

	status := canvas.NewText("", color.White)
	status.Alignment = fyne.TextAlignCenter
	status.TextSize = 12

	footer := canvas.NewText(mirror.Footer, color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff})
	footer.Alignment = fyne.TextAlignCenter
	footer.TextSize = 10

	content := container.New(&columnLayout{}, label, clock, status, footer)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(placement.Width, placement.Height))

	popup := &Window{
		window:     window,
		store:      store,
		logger:     logger.Named("popup"),
		background: background,
		label:      label,
		clock:      clock,
		status:     status,
		footer:     footer,
		inbox:      make(chan mirror.Message, inboxSize),
		done:       make(chan struct{}),
	}

	// Watch before the first read so no update is lost in between.
	popup.changes, popup.unwatch = store.Watch(watchSize)
	popup.state = popup.loadSnapshot()
	popup.renderUnsafe(popup.state)

	window.SetOnClosed(popup.stop)
	go popup.listen()

	window.Show()
	return popup
}

// Deliver hands a direct update to the window. A full inbox drops the
// message; the store change feed carries the same state.
func (popup *Window) Deliver(message mirror.Message) {
	if popup.closed.Load() {
		return
	}
	select {
	case popup.inbox <- message:
	default:
		popup.logger.Debug("popup inbox full")
	}
}

// Focus raises the window.
func (popup *Window) Focus() {
	fyne.Do(func() {
		popup.window.Show()
		popup.window.RequestFocus()
	})
}

// Close closes the window.
func (popup *Window) Close() {
	if popup.closed.Load() {
		return
	}
	popup.stop()
	fyne.Do(popup.window.Close)
}

// Closed reports whether the window is gone.
func (popup *Window) Closed() bool {
	return popup.closed.Load()
}

// State returns the projection currently displayed.
func (popup *Window) State() mirror.Projection {
	popup.mu.Lock()
	defer popup.mu.Unlock()
	return popup.state
}

func (popup *Window) stop() {
	popup.stopOnce.Do(func() {
		popup.closed.Store(true)
		popup.unwatch()
		close(popup.done)
	})
}

func (popup *Window) listen() {
	for {
		select {
		case <-popup.done:
			return

		case message := <-popup.inbox:
			if message.Type != mirror.MessageTimerUpdate {
				continue
			}
			popup.replace(message.State)

		case change, ok := <-popup.changes:
			if !ok {
				return
			}
			if change.Key != mirror.StateKey || change.Deleted {
				continue
			}
			state, err := mirror.Decode(change.Value)
			if err != nil {
				popup.logger.Debug("ignoring unreadable projection", zap.Error(err))
				continue
			}
			popup.replace(state)
		}
	}
}

// replace swaps the whole displayed state.
func (popup *Window) replace(state mirror.Projection) {
	popup.mu.Lock()
	popup.state = state
	popup.mu.Unlock()

	fyne.Do(func() {
		popup.renderUnsafe(state)
	})
}

func (popup *Window) loadSnapshot() mirror.Projection {
	data, ok := popup.store.Get(mirror.StateKey)
	if !ok {
		return mirror.DefaultProjection()
	}
	state, err := mirror.Decode(data)
	if err != nil {
		popup.logger.Debug("stored projection unreadable", zap.Error(err))
		return mirror.DefaultProjection()
	}
	return state
}

func (popup *Window) renderUnsafe(state mirror.Projection) {
	view := mirror.Present(state)

	tint := view.Color
	tint.A = 0x20
	popup.background.FillColor = tint
	popup.background.Refresh()

	popup.label.Text = view.Label
	popup.label.Refresh()

	popup.clock.Text = view.Clock
	popup.clock.Color = view.Color
	popup.clock.Refresh()

	popup.status.Text = view.Status
	popup.status.Color = view.StatusColor
	popup.status.Refresh()
}
