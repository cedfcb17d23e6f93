// Package tasks keeps the per-user daily task list.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"focusboard/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Retention is how long a task stays on the list.
	Retention = 7 * 24 * time.Hour
	// SweepInterval is the default cadence of RunSweeper.
	SweepInterval = time.Minute
)

var ErrEmptyText = errors.New("task text is empty")

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// List is one user's tasks. The in-memory slice is authoritative; storage
// failures are logged and do not roll back changes.
type List struct {
	mu       sync.Mutex
	store    storage.KV
	key      string
	logger   *zap.Logger
	now      func() time.Time
	items    []Task
	onChange func([]Task)
}

// Option customizes a List.
type Option func(*List)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(list *List) { list.now = now }
}

// Open loads the stored list for username.
func Open(ctx context.Context, store storage.KV, username string, logger *zap.Logger, opts ...Option) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	list := &List{
		store:  store,
		key:    storage.TasksKey(username),
		logger: logger.Named("tasks").With(zap.String("user", username)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(list)
	}

	raw, ok, err := store.Get(ctx, list.key)
	switch {
	case err != nil:
		list.logger.Warn("load tasks failed", zap.Error(err))
	case ok:
		if err := json.Unmarshal([]byte(raw), &list.items); err != nil {
			list.logger.Warn("stored tasks ignored", zap.Error(err))
			list.items = nil
		}
	}
	return list
}

// SetOnChange registers a callback receiving a copy of the list after every
// change. It runs on the goroutine that made the change.
func (list *List) SetOnChange(callback func([]Task)) {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.onChange = callback
}

// Items returns a copy of the tasks in insertion order.
func (list *List) Items() []Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]Task(nil), list.items...)
}

// Progress returns completed and total counts.
func (list *List) Progress() (done, total int) {
	list.mu.Lock()
	defer list.mu.Unlock()
	for _, task := range list.items {
		if task.Completed {
			done++
		}
	}
	return done, len(list.items)
}

// Add appends a task with trimmed text.
func (list *List) Add(ctx context.Context, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	task := Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: list.now().UTC(),
	}

	list.mu.Lock()
	list.items = append(list.items, task)
	list.commitLocked(ctx)
	return task, nil
}

// Toggle flips the completed flag. It reports whether id was found.
func (list *List) Toggle(ctx context.Context, id string) bool {
	list.mu.Lock()
	for i := range list.items {
		if list.items[i].ID == id {
			list.items[i].Completed = !list.items[i].Completed
			list.commitLocked(ctx)
			return true
		}
	}
	list.mu.Unlock()
	return false
}

// Delete removes a task. It reports whether id was found.
func (list *List) Delete(ctx context.Context, id string) bool {
	list.mu.Lock()
	for i, task := range list.items {
		if task.ID == id {
			list.items = append(list.items[:i], list.items[i+1:]...)
			list.commitLocked(ctx)
			return true
		}
	}
	list.mu.Unlock()
	return false
}

// Sweep drops tasks older than Retention and returns how many were removed.
// A task exactly Retention old is kept.
func (list *List) Sweep(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-Retention)

	list.mu.Lock()
	kept := list.items[:0]
	for _, task := range list.items {
		if !task.CreatedAt.Before(cutoff) {
			kept = append(kept, task)
		}
	}
	removed := len(list.items) - len(kept)
	if removed == 0 {
		list.mu.Unlock()
		return 0
	}
	list.items = kept
	list.commitLocked(ctx)
	list.logger.Debug("expired tasks removed", zap.Int("count", removed))
	return removed
}

// RunSweeper sweeps once immediately and then every interval until ctx is
// done.
func (list *List) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	list.Sweep(ctx, list.now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			list.Sweep(ctx, list.now())
		}
	}
}

// commitLocked persists the list, releases the lock and notifies. Saving
// under the lock keeps stored snapshots in change order.
func (list *List) commitLocked(ctx context.Context) {
	snapshot := append([]Task(nil), list.items...)
	if data, err := json.Marshal(snapshot); err != nil {
		list.logger.Warn("encode tasks failed", zap.Error(err))
	} else if err := list.store.Set(ctx, list.key, string(data)); err != nil {
		list.logger.Warn("save tasks failed", zap.Error(err))
	}
	callback := list.onChange
	list.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}
