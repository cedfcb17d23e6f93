// Package ephemeral holds process-lifetime shared state. Values are
// last-write-wins snapshots; watchers get a best-effort change feed.
package ephemeral

import "sync"

// Change describes a write to the store. Deleted changes carry no value.
type Change struct {
	Key     string
	Value   []byte
	Deleted bool
}

// Store is an in-memory key/value store with change watchers.
type Store struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers map[int]chan Change
	nextID   int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		values:   make(map[string][]byte),
		watchers: make(map[int]chan Change),
	}
}

// Set stores a copy of value under key and notifies watchers.
func (store *Store) Set(key string, value []byte) {
	stored := append([]byte(nil), value...)
	store.mu.Lock()
	store.values[key] = stored
	store.notifyLocked(Change{Key: key, Value: stored})
	store.mu.Unlock()
}

// Get returns a copy of the value under key.
func (store *Store) Get(key string) ([]byte, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), value...), true
}

// Delete removes key and notifies watchers when it existed.
func (store *Store) Delete(key string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.values[key]; !ok {
		return
	}
	delete(store.values, key)
	store.notifyLocked(Change{Key: key, Deleted: true})
}

// Watch registers a change feed. A full buffer drops changes; readers
// recover by calling Get. The returned cancel closes the channel.
func (store *Store) Watch(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	store.mu.Lock()
	id := store.nextID
	store.nextID++
	store.watchers[id] = ch
	store.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			store.mu.Lock()
			delete(store.watchers, id)
			store.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (store *Store) notifyLocked(change Change) {
	for _, ch := range store.watchers {
		value := append([]byte(nil), change.Value...)
		if change.Deleted {
			value = nil
		}
		select {
		case ch <- Change{Key: change.Key, Value: value, Deleted: change.Deleted}:
		default:
		}
	}
}
