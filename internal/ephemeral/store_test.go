package ephemeral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetCopies(t *testing.T) {
	store := New()
	value := []byte("one")
	store.Set("k", value)
	value[0] = 'X'

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "one", string(got))

	got[0] = 'Y'
	again, _ := store.Get("k")
	assert.Equal(t, "one", string(again))
}

func TestGetMissing(t *testing.T) {
	_, ok := New().Get("missing")
	assert.False(t, ok)
}

func TestWatchReceivesChanges(t *testing.T) {
	store := New()
	changes, cancel := store.Watch(4)
	defer cancel()

	store.Set("k", []byte("1"))
	store.Delete("k")
	store.Delete("k")

	require.Len(t, changes, 2)
	first := <-changes
	assert.Equal(t, Change{Key: "k", Value: []byte("1")}, first)
	second := <-changes
	assert.Equal(t, Change{Key: "k", Deleted: true}, second)
}

func TestWatchDropsWhenFullButKeepsLastValue(t *testing.T) {
	store := New()
	changes, cancel := store.Watch(1)
	defer cancel()

	store.Set("k", []byte("1"))
	store.Set("k", []byte("2"))

	assert.Len(t, changes, 1)
	latest, _ := store.Get("k")
	assert.Equal(t, "2", string(latest))
}

func TestCancelClosesAndIsIdempotent(t *testing.T) {
	store := New()
	changes, cancel := store.Watch(1)
	cancel()
	cancel()

	_, ok := <-changes
	assert.False(t, ok)
	assert.NotPanics(t, func() { store.Set("k", []byte("v")) })
}
