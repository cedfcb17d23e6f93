package tray

import (
	"testing"

	"focusboard/internal/core/model"
	"focusboard/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrayApp struct {
	menus []*fyne.Menu
}

func (app *fakeTrayApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		state timekeeper.State
		want  string
	}{
		{timekeeper.State{Mode: model.ModeFocus, RemainingSeconds: 754, Running: true}, "Focus 12:34"},
		{timekeeper.State{Mode: model.ModeBreak, RemainingSeconds: 300}, "Break 05:00 (paused)"},
		{timekeeper.State{Mode: model.ModeWater, RemainingSeconds: 5, Running: true}, "Water Break 00:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusText(tt.state))
	}
}

func TestSetStateUpdatesMenu(t *testing.T) {
	app := &fakeTrayApp{}
	manager := New(app, Callbacks{})

	manager.SetState(timekeeper.State{Mode: model.ModeBreak, RemainingSeconds: 60, Running: true})

	require.NotEmpty(t, app.menus)
	menu := app.menus[len(app.menus)-1]
	assert.Equal(t, "Status: Break 01:00", menu.Items[0].Label)
	assert.Equal(t, "Pause", manager.runItem.Label)
	assert.True(t, manager.modeItems[model.ModeBreak].Checked)
	assert.False(t, manager.modeItems[model.ModeFocus].Checked)
}

func TestCallbacksFire(t *testing.T) {
	var toggled, reset, floating int
	var picked model.Mode
	manager := New(nil, Callbacks{
		OnToggleRun:      func() { toggled++ },
		OnReset:          func() { reset++ },
		OnToggleFloating: func() { floating++ },
		OnMode:           func(mode model.Mode) { picked = mode },
	})

	manager.runItem.Action()
	manager.floatingItem.Action()
	manager.modeItems[model.ModeWater].Action()
	for _, item := range manager.menu().Items {
		if item.Label == "Reset" {
			item.Action()
		}
	}

	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, reset)
	assert.Equal(t, 1, floating)
	assert.Equal(t, model.ModeWater, picked)

	manager.SetFloating(true)
	assert.True(t, manager.floatingItem.Checked)
}
