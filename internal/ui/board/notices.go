package board

import (
	"image/color"
	"sync"
	"time"

	"focusboard/internal/notify"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	bannerLinger = 5 * time.Second
	toastLinger  = 3 * time.Second
)

// notice is a transient message area. It implements notify.Channel; a newer
// message restarts the dismissal timer and the close button hides it early.
type notice struct {
	linger time.Duration
	title  *widget.Label
	body   *widget.Label
	close  *widget.Button
	box    *fyne.Container

	mu         sync.Mutex
	generation int
	visible    bool
	last       notify.Event
}

func newNotice(linger time.Duration, tint color.Color) *notice {
	title := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	body := widget.NewLabel("")
	body.Wrapping = fyne.TextWrapWord

	n := &notice{linger: linger, title: title, body: body}
	n.close = widget.NewButtonWithIcon("", theme.CancelIcon(), n.Dismiss)
	n.close.Importance = widget.LowImportance

	background := canvas.NewRectangle(tint)
	background.CornerRadius = 12
	text := container.NewBorder(nil, nil, nil, container.NewVBox(n.close), container.NewVBox(title, body))
	n.box = container.NewStack(background, container.NewPadded(text))
	n.box.Hide()
	return n
}

func newBanner() *notice {
	return newNotice(bannerLinger, color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0x40})
}

func newToast() *notice {
	return newNotice(toastLinger, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x40})
}

// Notify shows event and schedules its dismissal.
func (n *notice) Notify(event notify.Event) error {
	n.mu.Lock()
	n.generation++
	generation := n.generation
	n.visible = true
	n.last = event
	n.mu.Unlock()

	fyne.Do(func() {
		n.title.SetText(event.Title)
		n.body.SetText(event.Body)
		n.box.Show()
	})
	time.AfterFunc(n.linger, func() { n.dismiss(generation) })
	return nil
}

// Dismiss hides the current message now. Its pending timer becomes a no-op.
func (n *notice) Dismiss() {
	n.mu.Lock()
	n.generation++
	n.visible = false
	n.mu.Unlock()
	fyne.Do(n.box.Hide)
}

func (n *notice) dismiss(generation int) {
	n.mu.Lock()
	if generation != n.generation {
		n.mu.Unlock()
		return
	}
	n.visible = false
	n.mu.Unlock()
	fyne.Do(n.box.Hide)
}

// Visible reports whether a message is showing.
func (n *notice) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// Last returns the most recent message.
func (n *notice) Last() notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

var _ notify.Channel = (*notice)(nil)

func toastEvent(title, body string) notify.Event {
	return notify.Event{Title: title, Body: body, Tag: "toast"}
}
