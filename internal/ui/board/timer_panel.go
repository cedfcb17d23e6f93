package board

import (
	"context"

	"focusboard/internal/core/model"
	"focusboard/internal/core/timekeeper"
	"focusboard/internal/mirror"
	"focusboard/internal/notify"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type timerPanel struct {
	board    *Board
	content  fyne.CanvasObject
	title    *widget.Label
	clock    *canvas.Text
	progress *widget.ProgressBar
	run      *widget.Button
	bell     *widget.Button
	floating *widget.Button
	hint     *widget.Button
	modes    map[model.Mode]*widget.Button
	state    timekeeper.State
}

func newTimerPanel(board *Board) *timerPanel {
	keeper := board.deps.Timer
	panel := &timerPanel{
		board:    board,
		title:    widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		clock:    canvas.NewText("--:--", theme.Color(theme.ColorNamePrimary)),
		progress: widget.NewProgressBar(),
		modes:    make(map[model.Mode]*widget.Button, len(model.Modes)),
	}
	panel.clock.TextSize = 48
	panel.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.clock.Alignment = fyne.TextAlignCenter
	panel.progress.TextFormatter = func() string { return "" }

	panel.bell = widget.NewButtonWithIcon("", theme.VisibilityOffIcon(), panel.requestPermission)
	panel.hint = widget.NewButton("", panel.requestPermission)
	panel.hint.Importance = widget.LowImportance

	modeButtons := container.NewHBox(panel.bell)
	for _, mode := range model.Modes {
		mode := mode
		button := widget.NewButton(mode.Label(), func() { keeper.SwitchMode(mode) })
		panel.modes[mode] = button
		modeButtons.Add(button)
	}

	panel.run = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), keeper.Toggle)
	panel.run.Importance = widget.HighImportance
	reset := widget.NewButtonWithIcon("", theme.MediaReplayIcon(), keeper.Reset)
	panel.floating = widget.NewButtonWithIcon("Floating timer", theme.ViewRestoreIcon(), board.ToggleFloating)

	controls := container.NewBorder(nil, nil, nil, container.NewHBox(reset, panel.floating), panel.run)
	panel.content = widget.NewCard("", "", container.NewVBox(
		container.NewBorder(nil, nil, panel.title, modeButtons),
		panel.clock,
		panel.progress,
		controls,
		panel.hint,
	))
	panel.refreshPermission()
	return panel
}

func (panel *timerPanel) setState(state timekeeper.State) {
	panel.state = state
	panel.title.SetText(state.Mode.Label())
	panel.clock.Text = mirror.FormatClock(state.RemainingSeconds)
	panel.clock.Color = mirror.ModeColor(state.Mode)
	panel.clock.Refresh()
	panel.progress.SetValue(state.Progress())

	if state.Running {
		panel.run.SetText("Pause")
		panel.run.SetIcon(theme.MediaPauseIcon())
	} else {
		panel.run.SetText("Start")
		panel.run.SetIcon(theme.MediaPlayIcon())
	}
	for mode, button := range panel.modes {
		if mode == state.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.LowImportance
		}
		button.Refresh()
	}
	panel.refreshPermission()
}

func (panel *timerPanel) setFloating(open bool) {
	if open {
		panel.floating.SetText("Close floating timer")
	} else {
		panel.floating.SetText("Floating timer")
	}
}

func (panel *timerPanel) requestPermission() {
	notifier := panel.board.deps.Notifier
	go func() {
		notifier.RequestPermission(context.Background())
		fyne.Do(panel.refreshPermission)
	}()
}

func (panel *timerPanel) refreshPermission() {
	granted := panel.board.deps.Notifier.Permission() == notify.PermissionGranted
	if granted {
		panel.bell.SetIcon(theme.VisibilityIcon())
	} else {
		panel.bell.SetIcon(theme.VisibilityOffIcon())
	}
	if panel.state.Mode != model.ModeFocus {
		panel.hint.Hide()
		return
	}
	panel.hint.SetText(focusHint(granted))
	if granted {
		panel.hint.Disable()
	} else {
		panel.hint.Enable()
	}
	panel.hint.Show()
}
