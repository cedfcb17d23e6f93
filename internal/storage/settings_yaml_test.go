package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusboard/internal/notify"
	"focusboard/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestLoadSettingsFileMissingReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "FocusBoard", settingsFileName)
	settings := preferences.Settings{
		FocusDuration:     25 * time.Minute,
		BreakDuration:     10 * time.Minute,
		WaterDuration:     3 * time.Minute,
		HydrationInterval: 0,
		Notifications:     notify.PermissionGranted,
		WebAddress:        "",
	}

	require.NoError(t, SaveSettingsFile(path, settings))
	loaded, err := LoadSettingsFile(path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettingsIgnoresInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
focus_minutes: -3
break_minutes: 7
notifications: sometimes
`), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.FocusDuration, settings.FocusDuration)
	assert.Equal(t, 7*time.Minute, settings.BreakDuration)
	assert.Equal(t, defaults.HydrationInterval, settings.HydrationInterval)
	assert.Equal(t, notify.PermissionDefault, settings.Notifications)
	assert.Equal(t, preferences.DefaultWebAddress, settings.WebAddress)
}

func TestLoadSettingsRejectsBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("focus_minutes: [oops"), 0o644))

	settings, err := LoadSettingsFile(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestWatchSettingsReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), settingsFileName)
	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan preferences.Settings, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchSettings(ctx, path, zaptest.NewLogger(t), func(settings preferences.Settings) {
			reloaded <- settings
		})
	}()

	updated := preferences.DefaultSettings()
	updated.FocusDuration = 50 * time.Minute
	require.Eventually(t, func() bool {
		require.NoError(t, SaveSettingsFile(path, updated))
		select {
		case settings := <-reloaded:
			return settings.FocusDuration == 50*time.Minute
		case <-time.After(400 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
