package tray

import (
	"fmt"
	"strings"

	"focusboard/internal/core/model"
	"focusboard/internal/core/timekeeper"
	"focusboard/internal/mirror"

	"fyne.io/fyne/v2"
)

const menuTitle = "Focus Board"

// MenuInstaller is the part of desktop.App the tray needs.
type MenuInstaller interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowBoard      func()
	OnToggleRun      func()
	OnReset          func()
	OnMode           func(model.Mode)
	OnToggleFloating func()
	OnPreferences    func()
	OnQuit           func()
}

// Manager handles system tray state.
type Manager struct {
	app          MenuInstaller
	callbacks    Callbacks
	statusItem   *fyne.MenuItem
	runItem      *fyne.MenuItem
	floatingItem *fyne.MenuItem
	modeItems    map[model.Mode]*fyne.MenuItem
	modeMenu     *fyne.MenuItem
	status       string
}

// New creates a tray manager with the provided callbacks. A nil app keeps
// the menu model without installing it.
func New(app MenuInstaller, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem, len(model.Modes)),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.runItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggleRun != nil {
			manager.callbacks.OnToggleRun()
		}
	})

	modes := make([]*fyne.MenuItem, 0, len(model.Modes))
	for _, mode := range model.Modes {
		mode := mode
		item := fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnMode != nil {
				manager.callbacks.OnMode(mode)
			}
		})
		manager.modeItems[mode] = item
		modes = append(modes, item)
	}
	manager.modeMenu = fyne.NewMenuItem("Mode", nil)
	manager.modeMenu.ChildMenu = fyne.NewMenu("", modes...)

	manager.floatingItem = fyne.NewMenuItem("Floating timer", func() {
		if manager.callbacks.OnToggleFloating != nil {
			manager.callbacks.OnToggleFloating()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetState reflects a timer snapshot in the menu.
func (manager *Manager) SetState(state timekeeper.State) {
	manager.status = StatusText(state)
	manager.statusItem.Label = "Status: " + manager.status
	if state.Running {
		manager.runItem.Label = "Pause"
	} else {
		manager.runItem.Label = "Start"
	}
	for mode, item := range manager.modeItems {
		item.Checked = mode == state.Mode
	}
	manager.refreshMenu()
}

// SetFloating marks whether the floating timer is open.
func (manager *Manager) SetFloating(open bool) {
	manager.floatingItem.Checked = open
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

// StatusText renders a compact status like "Focus 12:34".
func StatusText(state timekeeper.State) string {
	name := strings.TrimSuffix(state.Mode.Label(), " Time")
	status := fmt.Sprintf("%s %s", name, mirror.FormatClock(state.RemainingSeconds))
	if !state.Running {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Open Focus Board", manager.call(manager.callbacks.OnShowBoard)),
		fyne.NewMenuItemSeparator(),
		manager.runItem,
		fyne.NewMenuItem("Reset", manager.call(manager.callbacks.OnReset)),
		manager.modeMenu,
		manager.floatingItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", manager.call(manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", manager.call(manager.callbacks.OnQuit)),
	)
}

func (manager *Manager) call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu())
	}
}
