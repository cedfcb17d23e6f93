package updates

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClipboard struct {
	text string
	err  error
}

func (board *fakeClipboard) WriteAll(text string) error {
	if board.err != nil {
		return board.err
	}
	board.text = text
	return nil
}

func TestSetTextPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryKV()
	notepad := Open(ctx, store, "sam", &fakeClipboard{}, zaptest.NewLogger(t))
	assert.Empty(t, notepad.Text())

	notepad.SetText(ctx, "shipped the timer")

	raw, ok, err := store.Get(ctx, storage.UpdatesKey("sam"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "shipped the timer", raw)

	reopened := Open(ctx, store, "sam", &fakeClipboard{}, zaptest.NewLogger(t))
	assert.Equal(t, "shipped the timer", reopened.Text())
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	board := &fakeClipboard{}
	notepad := Open(ctx, storage.NewMemoryKV(), "sam", board, zaptest.NewLogger(t))

	assert.ErrorIs(t, notepad.Copy(), ErrEmpty)
	notepad.SetText(ctx, "   \n")
	assert.ErrorIs(t, notepad.Copy(), ErrEmpty)

	notepad.SetText(ctx, "Completed: tests")
	require.NoError(t, notepad.Copy())
	assert.Equal(t, "Completed: tests", board.text)
}

func TestCopyWrapsClipboardError(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("no display")
	notepad := Open(ctx, storage.NewMemoryKV(), "sam", &fakeClipboard{err: failure}, zaptest.NewLogger(t))
	notepad.SetText(ctx, "text")

	err := notepad.Copy()
	assert.ErrorIs(t, err, failure)
}

func TestTemplate(t *testing.T) {
	got := Template(time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC))
	want := "Daily Update - Friday, January 2\n\nCompleted:\n• \n\nIn Progress:\n• \n\nNext Steps:\n• \n\nBlockers:\n• None"
	assert.Equal(t, want, got)
}
