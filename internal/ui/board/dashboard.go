package board

import (
	"context"
	"errors"

	"focusboard/internal/goals"
	"focusboard/internal/session"
	"focusboard/internal/tasks"
	"focusboard/internal/updates"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

type dashboard struct {
	board   *Board
	content fyne.CanvasObject

	greeting     *widget.Label
	progressText *widget.Label
	progressBar  *widget.ProgressBar
	celebrate    *widget.Label
	taskInput    *widget.Entry
	taskRows     *fyne.Container
	updatesText  *widget.Entry
}

func newDashboard(board *Board, user session.User) *dashboard {
	view := &dashboard{
		board:        board,
		greeting:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		progressText: widget.NewLabel(""),
		progressBar:  widget.NewProgressBar(),
		celebrate:    widget.NewLabel("🎉 Amazing work! You completed all your tasks!"),
		taskInput:    widget.NewEntry(),
		taskRows:     container.NewVBox(),
		updatesText:  widget.NewMultiLineEntry(),
	}
	view.greeting.SetText(session.Greeting(board.deps.Now()) + ", " + user.Name + "!")
	view.progressBar.TextFormatter = func() string { return "" }

	board.timer = newTimerPanel(board)

	header := container.NewBorder(nil, nil,
		widget.NewLabel("Productivity Space"),
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), board.toggleTheme),
			widget.NewButtonWithIcon("Log out", theme.LogoutIcon(), board.logout),
		),
	)

	stats := container.NewGridWithColumns(2, view.progressCard(), view.goalsCard())
	body := container.NewVBox(
		header,
		view.greeting,
		widget.NewLabelWithStyle("Let's make today amazing ✨", fyne.TextAlignCenter, fyne.TextStyle{}),
		stats,
		board.timer.content,
		view.tasksCard(),
		view.updatesCard(),
	)
	view.content = container.NewVScroll(container.NewPadded(body))

	board.tasks.SetOnChange(func([]tasks.Task) {
		fyne.Do(view.refreshTasks)
	})
	view.refreshTasks()
	return view
}

func (view *dashboard) progressCard() fyne.CanvasObject {
	view.celebrate.Hide()
	return widget.NewCard("Today's Progress", "", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Completed"), view.progressText),
		view.progressBar,
		view.celebrate,
	))
}

func (view *dashboard) goalsCard() fyne.CanvasObject {
	today := goals.Today(view.board.deps.Now())
	list := container.NewVBox()
	for _, goal := range today.Goals {
		label := widget.NewLabel("• " + goal)
		label.Wrapping = fyne.TextWrapWord
		list.Add(label)
	}
	return widget.NewCard("Daily Goals", today.Weekday, list)
}

func (view *dashboard) tasksCard() fyne.CanvasObject {
	view.taskInput.SetPlaceHolder("Add a new task...")
	add := widget.NewButtonWithIcon("", theme.ContentAddIcon(), view.addTask)
	view.taskInput.OnSubmitted = func(string) { view.addTask() }
	return widget.NewCard("Today's Tasks", "", container.NewVBox(
		container.NewBorder(nil, nil, nil, add, view.taskInput),
		view.taskRows,
	))
}

func (view *dashboard) updatesCard() fyne.CanvasObject {
	notepad := view.board.notepad
	view.updatesText.SetPlaceHolder("Write your daily updates here... What did you accomplish today?")
	view.updatesText.SetMinRowsVisible(8)
	view.updatesText.SetText(notepad.Text())
	view.updatesText.OnChanged = func(text string) {
		notepad.SetText(context.Background(), text)
	}

	template := widget.NewButton("Use Template", func() {
		view.updatesText.SetText(updates.Template(view.board.deps.Now()))
	})
	copyButton := widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), view.copyUpdates)
	return widget.NewCard("Task Updates", "", container.NewVBox(
		container.NewHBox(template, copyButton),
		view.updatesText,
	))
}

func (view *dashboard) addTask() {
	_, err := view.board.tasks.Add(context.Background(), view.taskInput.Text)
	if errors.Is(err, tasks.ErrEmptyText) {
		return
	}
	view.taskInput.SetText("")
}

func (view *dashboard) copyUpdates() {
	view.board.notepad.SetText(context.Background(), view.updatesText.Text)
	err := view.board.notepad.Copy()
	switch {
	case err == nil:
		_ = view.board.toast.Notify(toastEvent("Copied! ✨", "Updates ready to be shared."))
	case errors.Is(err, updates.ErrEmpty):
		_ = view.board.toast.Notify(toastEvent("Nothing to copy", "Write your updates first."))
	default:
		view.board.logger.Warn("copy updates failed", zap.Error(err))
		_ = view.board.toast.Notify(toastEvent("Copy failed", "Please try again"))
	}
}

func (view *dashboard) refreshTasks() {
	list := view.board.tasks
	if list == nil {
		return
	}
	items := list.Items()
	view.taskRows.RemoveAll()
	if len(items) == 0 {
		view.taskRows.Add(widget.NewLabel("No tasks yet. Add one to get started! 🎯"))
	}
	for _, task := range items {
		id := task.ID
		check := widget.NewCheck(task.Text, nil)
		check.SetChecked(task.Completed)
		check.OnChanged = func(bool) { list.Toggle(context.Background(), id) }
		remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			list.Delete(context.Background(), id)
		})
		remove.Importance = widget.LowImportance
		view.taskRows.Add(container.NewBorder(nil, nil, nil, remove, check))
	}
	view.taskRows.Refresh()

	done, total := list.Progress()
	view.progressText.SetText(progressText(done, total))
	view.progressBar.SetValue(progressValue(done, total))
	if allDone(done, total) {
		view.celebrate.Show()
	} else {
		view.celebrate.Hide()
	}
}
