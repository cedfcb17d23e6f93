package timekeeper

import (
	"context"
	"sync"
	"time"

	"focusboard/internal/core/model"
	"focusboard/internal/notify"
)

// Notifier receives reminder notifications.
type Notifier interface {
	Dispatch(event notify.Event)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Now          func() time.Time
}

// TimeKeeper is the focus/break/water countdown state machine.
type TimeKeeper struct {
	mu       sync.Mutex
	config   model.TimerConfig
	options  Config
	state    State
	notifier Notifier
	events   []chan Event
	closed   bool
	wake     chan struct{}
}

// New creates a paused TimeKeeper in focus mode.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	keeper := &TimeKeeper{
		config:  config,
		options: options,
		wake:    make(chan struct{}, 1),
	}
	keeper.loadModeLocked(model.ModeFocus)
	return keeper
}

// SetNotifier injects the reminder notifier.
func (keeper *TimeKeeper) SetNotifier(notifier Notifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifier = notifier
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current state.
func (keeper *TimeKeeper) Snapshot() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Config returns the active duration table.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// Start resumes the countdown without touching the remaining time.
// A finished countdown stays stopped until Reset or SwitchMode.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.state.Running || keeper.state.RemainingSeconds <= 0 {
		keeper.mu.Unlock()
		return
	}
	keeper.state.Running = true
	keeper.changedLocked()
	keeper.mu.Unlock()
}

// Pause freezes the countdown.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	if !keeper.state.Running {
		keeper.mu.Unlock()
		return
	}
	keeper.state.Running = false
	keeper.changedLocked()
	keeper.mu.Unlock()
}

// Toggle starts a paused countdown or pauses a running one.
func (keeper *TimeKeeper) Toggle() {
	if keeper.Snapshot().Running {
		keeper.Pause()
		return
	}
	keeper.Start()
}

// Reset rewinds the current mode to its full duration and stops.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	keeper.state.RemainingSeconds = keeper.state.TotalSeconds
	keeper.state.Running = false
	keeper.state.LastWaterReminderMinute = 0
	keeper.changedLocked()
	keeper.mu.Unlock()
}

// SwitchMode stops the countdown and loads the duration for mode.
// Progress in the previous mode is discarded.
func (keeper *TimeKeeper) SwitchMode(mode model.Mode) {
	if !mode.Valid() {
		return
	}
	keeper.mu.Lock()
	keeper.loadModeLocked(mode)
	keeper.changedLocked()
	keeper.mu.Unlock()
}

// UpdateConfig replaces the duration table. The current mode picks up its new
// duration only when it sits paused at full length.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) {
	keeper.mu.Lock()
	keeper.config = config
	if !keeper.state.Running && keeper.state.RemainingSeconds == keeper.state.TotalSeconds {
		keeper.loadModeLocked(keeper.state.Mode)
		keeper.changedLocked()
	}
	keeper.mu.Unlock()
}

// Tick advances a running countdown by one second and fires any reminders
// whose threshold was crossed.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	if !keeper.state.Running || keeper.state.RemainingSeconds <= 0 {
		keeper.mu.Unlock()
		return
	}

	keeper.state.RemainingSeconds--
	now := keeper.options.Now()

	var fired []Reminder
	if keeper.state.Mode == model.ModeFocus {
		fired = keeper.focusRemindersLocked()
	}
	completed := keeper.state.RemainingSeconds == 0
	if completed {
		keeper.state.Running = false
		fired = append(fired, completionReminder(keeper.state.Mode))
	}

	keeper.emitLocked(Event{Type: EventTick, State: keeper.state, At: now})
	for _, reminder := range fired {
		keeper.emitLocked(Event{Type: EventReminder, State: keeper.state, Reminder: reminder, At: now})
	}
	if completed {
		keeper.changedLocked()
	}
	notifier := keeper.notifier
	keeper.mu.Unlock()

	if notifier == nil {
		return
	}
	for _, reminder := range fired {
		notifier.Dispatch(reminder.Notification)
	}
}

// Run drives Tick once per TickInterval while the countdown is running and
// returns when ctx is done.
func (keeper *TimeKeeper) Run(ctx context.Context) {
	var ticker *time.Ticker
	var tickC <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	defer stopTicker()

	keeper.signal()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keeper.wake:
			running := keeper.Snapshot().Running
			if running && ticker == nil {
				ticker = time.NewTicker(keeper.options.TickInterval)
				tickC = ticker.C
			}
			if !running {
				stopTicker()
			}
		case <-tickC:
			keeper.Tick()
		}
	}
}

// Close terminates all observers. Later updates are not delivered.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) focusRemindersLocked() []Reminder {
	var fired []Reminder

	elapsed := keeper.state.TotalSeconds - keeper.state.RemainingSeconds
	if elapsed > 0 && elapsed%60 == 0 {
		if reminder, ok := keeper.hydrationDueLocked(elapsed / 60); ok {
			fired = append(fired, reminder)
		}
	}

	if keeper.state.RemainingSeconds > 0 && keeper.state.RemainingSeconds == keeper.state.TotalSeconds/2 {
		fired = append(fired, stretchReminder())
	}
	return fired
}

func (keeper *TimeKeeper) hydrationDueLocked(elapsedMinutes int) (Reminder, bool) {
	interval := keeper.config.HydrationMinutes()
	if interval <= 0 || elapsedMinutes <= 0 || elapsedMinutes%interval != 0 {
		return Reminder{}, false
	}
	if elapsedMinutes == keeper.state.LastWaterReminderMinute {
		return Reminder{}, false
	}
	keeper.state.LastWaterReminderMinute = elapsedMinutes
	return hydrationReminder(), true
}

func (keeper *TimeKeeper) loadModeLocked(mode model.Mode) {
	seconds := keeper.config.SecondsFor(mode)
	keeper.state = State{
		Mode:             mode,
		RemainingSeconds: seconds,
		TotalSeconds:     seconds,
	}
}

func (keeper *TimeKeeper) changedLocked() {
	keeper.emitLocked(Event{
		Type:  EventStateChange,
		State: keeper.state,
		At:    keeper.options.Now(),
	})
	keeper.signal()
}

func (keeper *TimeKeeper) signal() {
	select {
	case keeper.wake <- struct{}{}:
	default:
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	events := append([]chan Event(nil), keeper.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
