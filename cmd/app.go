package main

import (
	"context"
	"errors"
	"strings"
	"sync"

	"focusboard/internal/core/model"
	"focusboard/internal/core/timekeeper"
	"focusboard/internal/ephemeral"
	"focusboard/internal/mirror"
	"focusboard/internal/notify"
	"focusboard/internal/platform"
	"focusboard/internal/session"
	"focusboard/internal/storage"
	"focusboard/internal/ui/board"
	"focusboard/internal/ui/popup"
	"focusboard/internal/ui/preferences"
	"focusboard/internal/ui/tray"
	"focusboard/internal/updates"
	"focusboard/internal/web"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runApp(cmd *cobra.Command) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if err := platform.ActivateRunning(appName); err != nil {
			return err
		}
		logger.Info("focus board already running; raised its window")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	settingsPath, err := storage.SettingsPath(appName)
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettingsFile(settingsPath)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", zap.Error(err))
	}
	if cmd.Flags().Changed("web-addr") {
		settings.WebAddress = webAddr
		if strings.EqualFold(webAddr, "off") {
			settings.WebAddress = ""
		}
	}

	kv := openKV()

	fyneApp := app.NewWithID(appID)

	keeper := timekeeper.New(settings.TimerConfig(), timekeeper.Config{})
	dispatcher := notify.NewDispatcher(logger, notify.Channels{
		Sound:   notify.NewBeep(),
		Desktop: notify.NewDesktop(fyneApp, appName),
	}, settings.Notifications)
	keeper.SetNotifier(dispatcher)

	sharedState := ephemeral.New()
	floating := mirror.New(logger, popup.NewOpener(fyneApp, sharedState, logger), sharedState, mirror.Options{})

	userSession := session.New(kv, logger)
	userSession.Load(ctx)

	mainBoard := board.New(fyneApp, board.Deps{
		Session:   userSession,
		Store:     kv,
		Timer:     keeper,
		Mirror:    floating,
		Notifier:  dispatcher,
		Clipboard: updates.SystemClipboard{},
		Logger:    logger,
	})
	dispatcher.SetBanner(mainBoard.Banner())
	dispatcher.SetToast(mainBoard.Toast())
	userSession.OnLogout(floating.Close)

	group, groupCtx := errgroup.WithContext(ctx)
	webServer := newWebRunner(groupCtx, web.NewServer(logger, sharedState))

	var settingsMu sync.Mutex
	applySettings := func(updated preferences.Settings) {
		settingsMu.Lock()
		settings = updated
		settingsMu.Unlock()
		keeper.UpdateConfig(updated.TimerConfig())
		webServer.Restart(updated.WebAddress)
	}
	saveSettings := func(updated preferences.Settings) {
		if err := storage.SaveSettingsFile(settingsPath, updated); err != nil {
			logger.Warn("save settings failed", zap.Error(err))
		}
	}

	dispatcher.SetOnPermissionChange(func(permission notify.Permission) {
		settingsMu.Lock()
		settings.Notifications = permission
		current := settings
		settingsMu.Unlock()
		saveSettings(current)
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		updated.Notifications = dispatcher.Permission()
		applySettings(updated)
		saveSettings(updated)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowBoard:      mainBoard.Show,
			OnToggleRun:      keeper.Toggle,
			OnReset:          keeper.Reset,
			OnMode:           func(mode model.Mode) { keeper.SwitchMode(mode) },
			OnToggleFloating: mainBoard.ToggleFloating,
			OnPreferences:    prefsWindow.Show,
			OnQuit:           fyneApp.Quit,
		})
		trayManager.SetState(keeper.Snapshot())
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	showFloating := func(open bool) {
		mainBoard.SetFloating(open)
		if trayManager != nil {
			trayManager.SetFloating(open)
		}
	}
	floating.SetOnStale(func() {
		fyne.Do(func() { showFloating(false) })
	})

	floating.Publish(mirror.FromState(keeper.Snapshot()))
	go followTimer(keeper.Subscribe(16), keeper.Snapshot, func(state timekeeper.State) {
		projection := mirror.FromState(state)
		floating.Publish(projection)
		floating.Push(projection)
		fyne.Do(func() {
			mainBoard.SetTimerState(state)
			if trayManager != nil {
				trayManager.SetState(state)
			}
		})
	})

	group.Go(func() error {
		keeper.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		floating.Run(groupCtx)
		return nil
	})
	group.Go(func() error {
		err := storage.WatchSettings(groupCtx, settingsPath, logger, func(updated preferences.Settings) {
			updated.Notifications = dispatcher.Permission()
			fyne.Do(func() {
				applySettings(updated)
				prefsWindow.UpdateSettings(updated)
			})
		})
		if err != nil {
			logger.Warn("settings live reload disabled", zap.Error(err))
		}
		return nil
	})
	go guard.Serve(func() {
		fyne.Do(mainBoard.Show)
	})

	webServer.Restart(settings.WebAddress)
	mainBoard.Show()
	fyneApp.Run()

	cancel()
	keeper.Close()
	webServer.Wait()
	if closer, ok := kv.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	return group.Wait()
}

// followTimer hands sink the keeper's current state for every event until
// events closes. Events only signal a change, so one that was dropped from a
// full buffer never leaves the views behind.
func followTimer(events <-chan timekeeper.Event, current func() timekeeper.State, sink func(timekeeper.State)) {
	for range events {
		sink(current())
	}
}

// openKV opens the sqlite store, falling back to memory for this run.
func openKV() storage.KV {
	dir, err := resolveDataDir()
	if err == nil {
		var store *storage.SQLiteKV
		store, err = storage.OpenSQLite(dir)
		if err == nil {
			logger.Debug("database opened", zap.String("path", store.Path()))
			return store
		}
	}
	logger.Warn("persistent storage unavailable; data will not survive restart", zap.Error(err))
	return storage.NewMemoryKV()
}

// webRunner keeps at most one browser timer server alive and rebinds it
// when the configured address changes.
type webRunner struct {
	parent context.Context
	server *web.Server

	mu      sync.Mutex
	address string
	cancel  context.CancelFunc
	done    chan struct{}
}

func newWebRunner(parent context.Context, server *web.Server) *webRunner {
	return &webRunner{parent: parent, server: server}
}

// Restart serves on address, or stops serving when address is empty.
func (runner *webRunner) Restart(address string) {
	runner.mu.Lock()
	defer runner.mu.Unlock()

	if address == runner.address && runner.cancel != nil {
		return
	}
	runner.stopLocked()
	runner.address = address
	if address == "" {
		logger.Info("browser timer disabled")
		return
	}

	ctx, cancel := context.WithCancel(runner.parent)
	done := make(chan struct{})
	runner.cancel = cancel
	runner.done = done
	go func() {
		defer close(done)
		if err := runner.server.Serve(ctx, address); err != nil {
			logger.Warn("browser timer stopped", zap.String("addr", address), zap.Error(err))
		}
	}()
}

// Wait stops the server and blocks until it exits.
func (runner *webRunner) Wait() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.stopLocked()
}

func (runner *webRunner) stopLocked() {
	if runner.cancel == nil {
		return
	}
	runner.cancel()
	<-runner.done
	runner.cancel = nil
	runner.done = nil
}
