package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	focus      *widget.Entry
	breakEntry *widget.Entry
	water      *widget.Entry
	hydration  *widget.Entry
	webAddress *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Focus Board Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		focus:      widget.NewEntry(),
		breakEntry: widget.NewEntry(),
		water:      widget.NewEntry(),
		hydration:  widget.NewEntry(),
		webAddress: widget.NewEntry(),
	}
	prefs.webAddress.SetPlaceHolder("empty disables the browser timer")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus session"), prefs.focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), prefs.breakEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Water break"), prefs.water, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Hydration reminder every"), prefs.hydration, widget.NewLabel("min (0 = off)")),
		widget.NewLabelWithStyle("Browser timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.webAddress,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(formatMinutes(settings.FocusDuration))
	prefs.breakEntry.SetText(formatMinutes(settings.BreakDuration))
	prefs.water.SetText(formatMinutes(settings.WaterDuration))
	prefs.hydration.SetText(formatMinutes(settings.HydrationInterval))
	prefs.webAddress.SetText(settings.WebAddress)
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// collect reads the form. Unparseable fields keep their previous values.
func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if minutes, ok := parseMinutes(prefs.focus.Text, false); ok {
		settings.FocusDuration = minutes
	}
	if minutes, ok := parseMinutes(prefs.breakEntry.Text, false); ok {
		settings.BreakDuration = minutes
	}
	if minutes, ok := parseMinutes(prefs.water.Text, false); ok {
		settings.WaterDuration = minutes
	}
	if minutes, ok := parseMinutes(prefs.hydration.Text, true); ok {
		settings.HydrationInterval = minutes
	}
	settings.WebAddress = strings.TrimSpace(prefs.webAddress.Text)
	return settings
}

func formatMinutes(value time.Duration) string {
	return fmt.Sprintf("%d", int(value.Minutes()))
}

func parseMinutes(value string, allowZero bool) (time.Duration, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 || (parsed == 0 && !allowZero) {
		return 0, false
	}
	return time.Duration(parsed) * time.Minute, true
}
