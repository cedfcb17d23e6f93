package timekeeper

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"focusboard/internal/core/model"
	"focusboard/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (notifier *recordingNotifier) Dispatch(event notify.Event) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.events = append(notifier.events, event)
}

func (notifier *recordingNotifier) tags() []string {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	tags := make([]string, 0, len(notifier.events))
	for _, event := range notifier.events {
		tags = append(tags, event.Tag)
	}
	return tags
}

func (notifier *recordingNotifier) count(tag string) int {
	total := 0
	for _, got := range notifier.tags() {
		if got == tag {
			total++
		}
	}
	return total
}

func newKeeper(t *testing.T, focus time.Duration) (*TimeKeeper, *recordingNotifier) {
	t.Helper()
	config := model.DefaultTimerConfig()
	config.Focus = focus
	keeper := New(config, Config{})
	notifier := &recordingNotifier{}
	keeper.SetNotifier(notifier)
	return keeper, notifier
}

func tickN(keeper *TimeKeeper, n int) {
	for i := 0; i < n; i++ {
		keeper.Tick()
	}
}

func TestNewStartsPausedInFocus(t *testing.T) {
	keeper := New(model.DefaultTimerConfig(), Config{})
	state := keeper.Snapshot()

	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, 2700, state.RemainingSeconds)
	assert.Equal(t, 2700, state.TotalSeconds)
	assert.False(t, state.Running)
	assert.Zero(t, state.LastWaterReminderMinute)
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	keeper, notifier := newKeeper(t, 45*time.Minute)

	tickN(keeper, 10)

	assert.Equal(t, 2700, keeper.Snapshot().RemainingSeconds)
	assert.Empty(t, notifier.tags())
}

func TestStartPauseAreIdempotent(t *testing.T) {
	keeper, _ := newKeeper(t, 45*time.Minute)
	events := keeper.Subscribe(16)

	keeper.Start()
	keeper.Start()
	keeper.Pause()
	keeper.Pause()

	assert.Len(t, events, 2)
	assert.False(t, keeper.Snapshot().Running)
}

func TestStartDoesNotResetRemaining(t *testing.T) {
	keeper, _ := newKeeper(t, 45*time.Minute)
	keeper.Start()
	tickN(keeper, 5)
	keeper.Pause()
	keeper.Start()

	assert.Equal(t, 2695, keeper.Snapshot().RemainingSeconds)
}

func TestRemainingNeverIncreasesOrGoesNegative(t *testing.T) {
	config := model.DefaultTimerConfig()
	config.Focus = 90 * time.Second
	keeper := New(config, Config{})
	rng := rand.New(rand.NewSource(7))

	previous := keeper.Snapshot().RemainingSeconds
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			keeper.Start()
		case 1:
			keeper.Pause()
		default:
			keeper.Tick()
		}
		current := keeper.Snapshot().RemainingSeconds
		require.LessOrEqual(t, current, previous, "step %d", i)
		require.GreaterOrEqual(t, current, 0, "step %d", i)
		previous = current
	}
}

func TestSwitchModeAlwaysLoadsFullDuration(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(keeper *TimeKeeper)
		mode    model.Mode
		want    int
	}{
		{name: "from paused focus", prepare: func(*TimeKeeper) {}, mode: model.ModeBreak, want: 300},
		{name: "mid countdown", prepare: func(keeper *TimeKeeper) {
			keeper.Start()
			tickN(keeper, 42)
		}, mode: model.ModeWater, want: 120},
		{name: "same mode running", prepare: func(keeper *TimeKeeper) {
			keeper.Start()
			tickN(keeper, 3)
		}, mode: model.ModeFocus, want: 2700},
		{name: "after completion", prepare: func(keeper *TimeKeeper) {
			keeper.SwitchMode(model.ModeWater)
			keeper.Start()
			tickN(keeper, 120)
		}, mode: model.ModeBreak, want: 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keeper, _ := newKeeper(t, 45*time.Minute)
			tt.prepare(keeper)

			keeper.SwitchMode(tt.mode)
			state := keeper.Snapshot()

			assert.Equal(t, tt.mode, state.Mode)
			assert.Equal(t, tt.want, state.RemainingSeconds)
			assert.Equal(t, tt.want, state.TotalSeconds)
			assert.False(t, state.Running)
			assert.Zero(t, state.LastWaterReminderMinute)
		})
	}
}

func TestSwitchModeRejectsUnknownMode(t *testing.T) {
	keeper, _ := newKeeper(t, 45*time.Minute)
	keeper.SwitchMode(model.Mode("nap"))
	assert.Equal(t, model.ModeFocus, keeper.Snapshot().Mode)
}

func TestResetRewindsAndClearsMarker(t *testing.T) {
	keeper, notifier := newKeeper(t, 45*time.Minute)
	keeper.Start()
	tickN(keeper, 30*60)
	require.Equal(t, 30, keeper.Snapshot().LastWaterReminderMinute)

	keeper.Reset()
	state := keeper.Snapshot()

	assert.Equal(t, 2700, state.RemainingSeconds)
	assert.False(t, state.Running)
	assert.Zero(t, state.LastWaterReminderMinute)

	keeper.Start()
	tickN(keeper, 30*60)
	assert.Equal(t, 2, notifier.count("water"))
}

func TestHydrationFiresAtEveryIntervalBoundary(t *testing.T) {
	keeper, notifier := newKeeper(t, 90*time.Minute)
	keeper.Start()

	tickN(keeper, 30*60-1)
	assert.Zero(t, notifier.count("water"))

	keeper.Tick()
	assert.Equal(t, 1, notifier.count("water"))
	assert.Equal(t, 30, keeper.Snapshot().LastWaterReminderMinute)

	tickN(keeper, 30*60)
	assert.Equal(t, 2, notifier.count("water"))
	assert.Equal(t, 60, keeper.Snapshot().LastWaterReminderMinute)
}

func TestHydrationDedupWithinSameBoundary(t *testing.T) {
	keeper, _ := newKeeper(t, 45*time.Minute)

	keeper.mu.Lock()
	_, first := keeper.hydrationDueLocked(30)
	_, second := keeper.hydrationDueLocked(30)
	keeper.mu.Unlock()

	assert.True(t, first)
	assert.False(t, second)
}

func TestHydrationDisabledBelowOneMinute(t *testing.T) {
	config := model.DefaultTimerConfig()
	config.HydrationInterval = 0
	keeper := New(config, Config{})
	notifier := &recordingNotifier{}
	keeper.SetNotifier(notifier)

	keeper.Start()
	tickN(keeper, 2700)

	assert.Zero(t, notifier.count("water"))
}

func TestStretchFiresOnceAtMidpoint(t *testing.T) {
	keeper, notifier := newKeeper(t, 45*time.Minute)
	keeper.Start()

	tickN(keeper, 1349)
	assert.Zero(t, notifier.count("stretch"))

	keeper.Tick()
	assert.Equal(t, 1350, keeper.Snapshot().RemainingSeconds)
	assert.Equal(t, 1, notifier.count("stretch"))

	tickN(keeper, 1350)
	assert.Equal(t, 1, notifier.count("stretch"))
}

func TestNoFocusRemindersInOtherModes(t *testing.T) {
	keeper, notifier := newKeeper(t, 45*time.Minute)
	keeper.SwitchMode(model.ModeBreak)
	keeper.Start()

	tickN(keeper, 300)

	assert.Equal(t, []string{"break-complete"}, notifier.tags())
}

func TestFullFocusSession(t *testing.T) {
	keeper, notifier := newKeeper(t, 45*time.Minute)
	events := keeper.Subscribe(4096)
	keeper.Start()

	tickN(keeper, 2700)
	state := keeper.Snapshot()

	assert.Zero(t, state.RemainingSeconds)
	assert.False(t, state.Running)
	// stretch at 22:30 elapsed, hydration at 30:00, nothing at 45:00 but completion
	assert.Equal(t, []string{"stretch", "water", "focus-complete"}, notifier.tags())

	completions := 0
	for len(events) > 0 {
		event := <-events
		if event.Type == EventReminder && event.Reminder.Kind == ReminderComplete {
			completions++
			assert.Equal(t, model.ModeFocus, event.Reminder.Mode)
			assert.Equal(t, "🎉 Focus Session Complete!", event.Reminder.Notification.Title)
		}
	}
	assert.Equal(t, 1, completions)
}

func TestCompletedCountdownStaysStopped(t *testing.T) {
	keeper, notifier := newKeeper(t, 45*time.Minute)
	keeper.SwitchMode(model.ModeWater)
	keeper.Start()
	tickN(keeper, 120)

	keeper.Start()
	tickN(keeper, 5)

	state := keeper.Snapshot()
	assert.Zero(t, state.RemainingSeconds)
	assert.False(t, state.Running)
	assert.Equal(t, []string{"water-complete"}, notifier.tags())
}

func TestCompletionCopyPerMode(t *testing.T) {
	tests := []struct {
		mode  model.Mode
		tag   string
		title string
	}{
		{mode: model.ModeFocus, tag: "focus-complete", title: "🎉 Focus Session Complete!"},
		{mode: model.ModeBreak, tag: "break-complete", title: "☕ Break's Over!"},
		{mode: model.ModeWater, tag: "water-complete", title: "💧 Hydration Complete!"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			reminder := completionReminder(tt.mode)
			assert.Equal(t, tt.tag, reminder.Notification.Tag)
			assert.Equal(t, tt.title, reminder.Notification.Title)
		})
	}
}

func TestProgress(t *testing.T) {
	state := State{TotalSeconds: 200, RemainingSeconds: 50}
	assert.InDelta(t, 0.75, state.Progress(), 1e-9)
	assert.Zero(t, State{}.Progress())
}

func TestUpdateConfigAppliesOnlyToUntouchedCountdown(t *testing.T) {
	keeper, _ := newKeeper(t, 45*time.Minute)

	config := keeper.Config()
	config.Focus = 25 * time.Minute
	keeper.UpdateConfig(config)
	assert.Equal(t, 1500, keeper.Snapshot().TotalSeconds)

	keeper.Start()
	tickN(keeper, 10)
	config.Focus = 50 * time.Minute
	keeper.UpdateConfig(config)

	state := keeper.Snapshot()
	assert.Equal(t, 1500, state.TotalSeconds)
	assert.Equal(t, 1490, state.RemainingSeconds)
}

func TestCloseClosesSubscribers(t *testing.T) {
	keeper, _ := newKeeper(t, 45*time.Minute)
	events := keeper.Subscribe(1)

	keeper.Close()
	keeper.Close()

	_, ok := <-events
	assert.False(t, ok)

	late := keeper.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}

func TestRunTicksOnlyWhileRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	config := model.DefaultTimerConfig()
	config.Water = 3 * time.Second
	keeper := New(config, Config{TickInterval: 5 * time.Millisecond})
	keeper.SwitchMode(model.ModeWater)
	notifier := &recordingNotifier{}
	keeper.SetNotifier(notifier)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		keeper.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 3, keeper.Snapshot().RemainingSeconds)

	keeper.Start()
	require.Eventually(t, func() bool {
		return keeper.Snapshot().RemainingSeconds == 0
	}, time.Second, 5*time.Millisecond)
	assert.False(t, keeper.Snapshot().Running)
	assert.Equal(t, []string{"water-complete"}, notifier.tags())

	cancel()
	<-done
	keeper.Close()
}
