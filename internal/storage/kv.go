package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// UserKey holds the logged-in profile as JSON.
	UserKey = "user"
	// ThemeKey holds "light" or "dark".
	ThemeKey = "theme"

	databaseFileName = "focusboard.db"
)

// TasksKey is the per-user key for the task list.
func TasksKey(username string) string {
	return username + ":tasks"
}

// UpdatesKey is the per-user key for the daily updates text.
func UpdatesKey(username string) string {
	return username + ":updates"
}

// KV is a persistent string key/value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SQLiteKV stores values in a single sqlite table.
type SQLiteKV struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database in dataDir.
func OpenSQLite(dataDir string) (*SQLiteKV, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, databaseFileName)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteKV{db: db, path: dbPath}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (store *SQLiteKV) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := store.db.Exec(schema); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (store *SQLiteKV) Path() string {
	return store.path
}

// Get returns the value under key.
func (store *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := store.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key.
func (store *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (store *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := store.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (store *SQLiteKV) Close() error {
	return store.db.Close()
}

// MemoryKV keeps values for the life of the process. It backs the app when
// the database cannot be opened.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get returns the value under key.
func (store *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok, nil
}

// Set writes value under key.
func (store *MemoryKV) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}

// Delete removes key.
func (store *MemoryKV) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.values, key)
	return nil
}
