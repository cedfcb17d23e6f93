// Package session owns the logged-in user profile and theme preference.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"focusboard/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrInvalidName   = errors.New("Please enter your name")
	ErrInvalidGender = errors.New("Please select your gender")
)

// Gender selects cosmetic copy and colors only.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// Theme is the light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User is the stored profile.
type User struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// Session is the explicitly constructed user context shared by the UI.
type Session struct {
	mu       sync.Mutex
	store    storage.KV
	logger   *zap.Logger
	user     *User
	theme    Theme
	teardown []func()
}

// New creates an empty session; call Load to restore the stored profile.
func New(store storage.KV, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:  store,
		logger: logger.Named("session"),
		theme:  ThemeLight,
	}
}

// Load restores the user and theme. Unreadable values fall back to defaults.
func (session *Session) Load(ctx context.Context) {
	var user *User
	raw, ok, err := session.store.Get(ctx, storage.UserKey)
	switch {
	case err != nil:
		session.logger.Warn("load user failed", zap.Error(err))
	case ok:
		var stored User
		if err := json.Unmarshal([]byte(raw), &stored); err != nil || validate(stored) != nil {
			session.logger.Warn("stored user ignored", zap.Error(err))
		} else {
			user = &stored
		}
	}

	theme := ThemeLight
	raw, ok, err = session.store.Get(ctx, storage.ThemeKey)
	if err != nil {
		session.logger.Warn("load theme failed", zap.Error(err))
	} else if ok && (Theme(raw) == ThemeLight || Theme(raw) == ThemeDark) {
		theme = Theme(raw)
	}

	session.mu.Lock()
	session.user = user
	session.theme = theme
	session.mu.Unlock()
}

// User returns the logged-in profile.
func (session *Session) User() (User, bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.user == nil {
		return User{}, false
	}
	return *session.user, true
}

// Login validates and stores the profile. A storage failure is logged and
// the profile stays in memory for this run.
func (session *Session) Login(ctx context.Context, name string, gender Gender) (User, error) {
	user := User{Name: strings.TrimSpace(name), Gender: gender}
	if err := validate(user); err != nil {
		return User{}, err
	}

	session.mu.Lock()
	session.user = &user
	session.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return user, fmt.Errorf("encode user: %w", err)
	}
	if err := session.store.Set(ctx, storage.UserKey, string(data)); err != nil {
		session.logger.Warn("save user failed", zap.Error(err))
	}
	return user, nil
}

// OnLogout registers teardown run after the profile is cleared.
func (session *Session) OnLogout(hook func()) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.teardown = append(session.teardown, hook)
}

// Logout clears the stored profile and runs teardown hooks.
func (session *Session) Logout(ctx context.Context) {
	session.mu.Lock()
	session.user = nil
	hooks := append([]func(){}, session.teardown...)
	session.mu.Unlock()

	if err := session.store.Delete(ctx, storage.UserKey); err != nil {
		session.logger.Warn("delete user failed", zap.Error(err))
	}
	for _, hook := range hooks {
		hook()
	}
}

// Theme returns the current theme.
func (session *Session) Theme() Theme {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.theme
}

// ToggleTheme flips between light and dark and persists the choice.
func (session *Session) ToggleTheme(ctx context.Context) Theme {
	session.mu.Lock()
	if session.theme == ThemeDark {
		session.theme = ThemeLight
	} else {
		session.theme = ThemeDark
	}
	theme := session.theme
	session.mu.Unlock()

	if err := session.store.Set(ctx, storage.ThemeKey, string(theme)); err != nil {
		session.logger.Warn("save theme failed", zap.Error(err))
	}
	return theme
}

// Accent is the highlight color for the logged-in user.
func (session *Session) Accent() color.NRGBA {
	user, _ := session.User()
	return AccentFor(user.Gender)
}

// AccentFor maps a gender to its palette color; purple is the default.
func AccentFor(gender Gender) color.NRGBA {
	if gender == GenderMale {
		return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	}
	return color.NRGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff}
}

// Greeting returns the time-of-day salutation.
func Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func validate(user User) error {
	if strings.TrimSpace(user.Name) == "" {
		return ErrInvalidName
	}
	if user.Gender != GenderFemale && user.Gender != GenderMale {
		return ErrInvalidGender
	}
	return nil
}
