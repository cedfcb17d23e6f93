// Package board is the primary Focus Board window: login, dashboard and the
// in-window notification surfaces.
package board

import (
	"context"
	"time"

	"focusboard/internal/core/timekeeper"
	"focusboard/internal/mirror"
	"focusboard/internal/notify"
	"focusboard/internal/session"
	"focusboard/internal/storage"
	"focusboard/internal/tasks"
	"focusboard/internal/updates"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"
)

const windowTitle = "Focus Board"

// Notifier is the permission side of the notification dispatcher.
type Notifier interface {
	Permission() notify.Permission
	RequestPermission(ctx context.Context) notify.Permission
}

// Deps are the collaborators the board drives.
type Deps struct {
	Session   *session.Session
	Store     storage.KV
	Timer     *timekeeper.TimeKeeper
	Mirror    *mirror.Mirror
	Notifier  Notifier
	Clipboard updates.Clipboard
	Logger    *zap.Logger
	Now       func() time.Time
}

// Board owns the main window. All methods run on the fyne goroutine unless
// noted.
type Board struct {
	app    fyne.App
	window fyne.Window
	deps   Deps
	logger *zap.Logger

	banner *notice
	toast  *notice

	tasks   *tasks.List
	notepad *updates.Notepad
	timer   *timerPanel
	view    *dashboard
	entry   *loginView

	cancelUser context.CancelFunc
}

// New creates the board window without showing it.
func New(app fyne.App, deps Deps) *Board {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	window := app.NewWindow(windowTitle)
	window.Resize(fyne.NewSize(900, 760))

	board := &Board{
		app:    app,
		window: window,
		deps:   deps,
		logger: deps.Logger.Named("board"),
		banner: newBanner(),
		toast:  newToast(),
	}
	window.SetCloseIntercept(window.Hide)
	deps.Session.OnLogout(board.Teardown)
	return board
}

// Banner is the in-window reminder channel.
func (board *Board) Banner() notify.Channel {
	return board.banner
}

// Toast is the transient status channel.
func (board *Board) Toast() notify.Channel {
	return board.toast
}

// Window returns the main window.
func (board *Board) Window() fyne.Window {
	return board.window
}

// Show renders the view matching the session and raises the window.
func (board *Board) Show() {
	board.render()
	board.window.Show()
	board.window.RequestFocus()
}

// SetTimerState mirrors a timer snapshot into the dashboard.
func (board *Board) SetTimerState(state timekeeper.State) {
	if board.timer != nil {
		board.timer.setState(state)
	}
}

// SetFloating reflects whether the floating timer is open.
func (board *Board) SetFloating(open bool) {
	if board.timer != nil {
		board.timer.setFloating(open)
	}
}

// ToggleFloating opens or closes the floating timer.
func (board *Board) ToggleFloating() {
	if board.deps.Mirror.IsOpen() {
		board.deps.Mirror.Close()
	} else {
		board.deps.Mirror.Open(mirror.FromState(board.deps.Timer.Snapshot()))
	}
	board.SetFloating(board.deps.Mirror.IsOpen())
}

// Teardown drops per-user state. It is registered as a logout hook.
func (board *Board) Teardown() {
	if board.cancelUser != nil {
		board.cancelUser()
		board.cancelUser = nil
	}
	board.tasks = nil
	board.notepad = nil
	board.timer = nil
	board.view = nil
}

func (board *Board) render() {
	board.applyTheme()
	user, ok := board.deps.Session.User()
	if !ok {
		board.entry = newLoginView(board.login)
		board.window.SetContent(board.withNotices(board.entry.content))
		return
	}
	board.entry = nil
	board.openUser(user)
	board.view = newDashboard(board, user)
	board.window.SetContent(board.withNotices(board.view.content))
	board.SetTimerState(board.deps.Timer.Snapshot())
	board.SetFloating(board.deps.Mirror.IsOpen())
}

func (board *Board) withNotices(content fyne.CanvasObject) fyne.CanvasObject {
	return container.NewBorder(board.banner.box, board.toast.box, nil, nil, content)
}

func (board *Board) login(name string, gender session.Gender) error {
	ctx := context.Background()
	if _, err := board.deps.Session.Login(ctx, name, gender); err != nil {
		return err
	}
	board.render()
	return nil
}

func (board *Board) logout() {
	board.deps.Session.Logout(context.Background())
	board.render()
}

func (board *Board) toggleTheme() {
	board.deps.Session.ToggleTheme(context.Background())
	board.applyTheme()
}

func (board *Board) applyTheme() {
	session := board.deps.Session
	board.app.Settings().SetTheme(newBoardTheme(session.Theme(), session.Accent()))
}

// openUser loads the per-user task list and notepad and starts the sweeper.
func (board *Board) openUser(user session.User) {
	if board.tasks != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	board.cancelUser = cancel
	board.tasks = tasks.Open(ctx, board.deps.Store, user.Name, board.deps.Logger, tasks.WithClock(board.deps.Now))
	board.notepad = updates.Open(ctx, board.deps.Store, user.Name, board.deps.Clipboard, board.deps.Logger)
	go board.tasks.RunSweeper(ctx, tasks.SweepInterval)
}
