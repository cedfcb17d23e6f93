package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"focusboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

type brokenKV struct {
	*storage.MemoryKV
}

func (brokenKV) Set(context.Context, string, string) error {
	return errors.New("database is locked")
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func openList(t *testing.T, store storage.KV, c *clock) *List {
	t.Helper()
	return Open(context.Background(), store, "sam", zaptest.NewLogger(t), WithClock(c.Now))
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)}
}

func TestAddTrimsAndPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryKV()
	list := openList(t, store, newClock())

	task, err := list.Add(ctx, "  write report  ")
	require.NoError(t, err)
	assert.Equal(t, "write report", task.Text)
	assert.False(t, task.Completed)
	assert.NotEmpty(t, task.ID)

	raw, ok, err := store.Get(ctx, storage.TasksKey("sam"))
	require.NoError(t, err)
	require.True(t, ok)
	var stored []Task
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, []Task{task}, stored)
}

func TestAddRejectsBlank(t *testing.T) {
	list := openList(t, storage.NewMemoryKV(), newClock())

	_, err := list.Add(context.Background(), " \t ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, list.Items())
}

func TestIDsAreUnique(t *testing.T) {
	list := openList(t, storage.NewMemoryKV(), newClock())
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		task, err := list.Add(context.Background(), "same text")
		require.NoError(t, err)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestToggleDeleteAndProgress(t *testing.T) {
	ctx := context.Background()
	list := openList(t, storage.NewMemoryKV(), newClock())
	first, _ := list.Add(ctx, "one")
	second, _ := list.Add(ctx, "two")
	_, _ = list.Add(ctx, "three")

	assert.True(t, list.Toggle(ctx, second.ID))
	done, total := list.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	assert.True(t, list.Toggle(ctx, second.ID))
	done, _ = list.Progress()
	assert.Equal(t, 0, done)

	assert.True(t, list.Delete(ctx, first.ID))
	assert.False(t, list.Delete(ctx, first.ID))
	assert.False(t, list.Toggle(ctx, "missing"))

	items := list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "two", items[0].Text)
	assert.Equal(t, "three", items[1].Text)
}

func TestReopenRestoresList(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryKV()
	c := newClock()
	list := openList(t, store, c)
	task, _ := list.Add(ctx, "carry over")
	list.Toggle(ctx, task.ID)

	reopened := openList(t, store, c)
	items := reopened.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Completed)
	assert.True(t, items[0].CreatedAt.Equal(c.Now()))

	other := Open(ctx, store, "alex", zaptest.NewLogger(t))
	assert.Empty(t, other.Items())
}

func TestSweepDropsOldTasks(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	list := openList(t, storage.NewMemoryKV(), c)
	_, _ = list.Add(ctx, "old")
	c.Advance(2 * 24 * time.Hour)
	_, _ = list.Add(ctx, "recent")

	assert.Equal(t, 0, list.Sweep(ctx, c.Now()))

	// "old" is exactly Retention old here.
	assert.Equal(t, 0, list.Sweep(ctx, c.Now().Add(5*24*time.Hour)))
	require.Len(t, list.Items(), 2)

	removed := list.Sweep(ctx, c.Now().Add(5*24*time.Hour+time.Second))
	assert.Equal(t, 1, removed)
	items := list.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "recent", items[0].Text)
}

func TestStorageFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	list := openList(t, brokenKV{storage.NewMemoryKV()}, newClock())

	task, err := list.Add(ctx, "still here")
	require.NoError(t, err)
	assert.Equal(t, []Task{task}, list.Items())
}

func TestCorruptStoredListIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryKV()
	require.NoError(t, store.Set(ctx, storage.TasksKey("sam"), "not json"))

	list := openList(t, store, newClock())
	assert.Empty(t, list.Items())
}

func TestOnChangeReceivesSnapshot(t *testing.T) {
	ctx := context.Background()
	list := openList(t, storage.NewMemoryKV(), newClock())
	var seen [][]Task
	list.SetOnChange(func(items []Task) { seen = append(seen, items) })

	task, _ := list.Add(ctx, "a")
	list.Toggle(ctx, task.ID)
	list.Delete(ctx, task.ID)

	require.Len(t, seen, 3)
	assert.Len(t, seen[0], 1)
	assert.True(t, seen[1][0].Completed)
	assert.Empty(t, seen[2])
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := newClock()
	list := openList(t, storage.NewMemoryKV(), c)
	_, _ = list.Add(context.Background(), "expires")
	c.Advance(Retention + time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		list.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(list.Items()) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
