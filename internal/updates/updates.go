// Package updates is the per-user daily status notepad.
package updates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"focusboard/internal/storage"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

var ErrEmpty = errors.New("nothing to copy")

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// Notepad holds one user's update text.
type Notepad struct {
	mu        sync.Mutex
	store     storage.KV
	key       string
	clipboard Clipboard
	logger    *zap.Logger
	text      string
}

// Open loads the stored text for username.
func Open(ctx context.Context, store storage.KV, username string, board Clipboard, logger *zap.Logger) *Notepad {
	if logger == nil {
		logger = zap.NewNop()
	}
	if board == nil {
		board = SystemClipboard{}
	}
	notepad := &Notepad{
		store:     store,
		key:       storage.UpdatesKey(username),
		clipboard: board,
		logger:    logger.Named("updates").With(zap.String("user", username)),
	}
	text, _, err := store.Get(ctx, notepad.key)
	if err != nil {
		notepad.logger.Warn("load updates failed", zap.Error(err))
	}
	notepad.text = text
	return notepad
}

// Text returns the current text.
func (notepad *Notepad) Text() string {
	notepad.mu.Lock()
	defer notepad.mu.Unlock()
	return notepad.text
}

// SetText replaces the text and persists it.
func (notepad *Notepad) SetText(ctx context.Context, text string) {
	notepad.mu.Lock()
	defer notepad.mu.Unlock()
	if notepad.text == text {
		return
	}
	notepad.text = text
	if err := notepad.store.Set(ctx, notepad.key, text); err != nil {
		notepad.logger.Warn("save updates failed", zap.Error(err))
	}
}

// Copy writes the text to the clipboard.
func (notepad *Notepad) Copy() error {
	text := notepad.Text()
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	if err := notepad.clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy updates: %w", err)
	}
	return nil
}

// Template returns the starter text dated for now.
func Template(now time.Time) string {
	return "Daily Update - " + now.Format("Monday, January 2") +
		"\n\nCompleted:\n• \n\nIn Progress:\n• \n\nNext Steps:\n• \n\nBlockers:\n• None"
}
