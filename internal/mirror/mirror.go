package mirror

import (
	"context"
	"errors"
	"sync"
	"time"

	"focusboard/internal/ephemeral"

	"go.uber.org/zap"
)

// ErrBlocked indicates the host refused to create a floating surface.
var ErrBlocked = errors.New("floating window blocked")

// Surface is a secondary window that renders projections. Closed must be
// cheap and safe to call from any goroutine.
type Surface interface {
	Deliver(message Message)
	Focus()
	Close()
	Closed() bool
}

// Placement is the requested geometry of a new surface, relative to the
// primary window.
type Placement struct {
	Width   float32
	Height  float32
	OffsetX float32
	OffsetY float32
}

// DefaultPlacement is a 600x300 surface near the primary window's top right corner.
func DefaultPlacement() Placement {
	return Placement{Width: 600, Height: 300, OffsetX: -650, OffsetY: 50}
}

// Opener creates surfaces.
type Opener interface {
	Open(placement Placement) (Surface, error)
}

// Options tunes a Mirror.
type Options struct {
	Placement  Placement
	SweepEvery time.Duration
}

// Mirror projects timer state into at most one floating surface. It is the
// only writer of StateKey and LiveKey in the ephemeral store.
type Mirror struct {
	openMu  sync.Mutex
	mu      sync.Mutex
	logger  *zap.Logger
	opener  Opener
	store   *ephemeral.Store
	options Options
	surface Surface
	onStale func()

	live      Projection
	published bool
}

// New creates a mirror with no surface.
func New(logger *zap.Logger, opener Opener, store *ephemeral.Store, options Options) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.Placement.Width <= 0 || options.Placement.Height <= 0 {
		options.Placement = DefaultPlacement()
	}
	if options.SweepEvery <= 0 {
		options.SweepEvery = time.Second
	}
	return &Mirror{
		logger:  logger.Named("mirror"),
		opener:  opener,
		store:   store,
		options: options,
	}
}

// SetOnStale registers a hook fired when the sweep finds the surface was
// closed outside the mirror.
func (mirror *Mirror) SetOnStale(handler func()) {
	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	mirror.onStale = handler
}

// Open focuses the live surface, or creates one seeded with initial. A
// refused open leaves the mirror closed; callers may try again later.
func (mirror *Mirror) Open(initial Projection) {
	mirror.openMu.Lock()
	defer mirror.openMu.Unlock()

	if surface := mirror.liveSurface(); surface != nil {
		surface.Focus()
		return
	}

	surface, err := mirror.opener.Open(mirror.options.Placement)
	if err != nil || surface == nil {
		mirror.logger.Debug("floating window not opened", zap.Error(err))
		return
	}

	initial.IsOpen = true
	mirror.write(initial)

	mirror.mu.Lock()
	mirror.surface = surface
	mirror.republishLocked()
	mirror.mu.Unlock()
}

// Close closes a live surface and always forgets the handle.
func (mirror *Mirror) Close() {
	mirror.mu.Lock()
	surface := mirror.surface
	mirror.surface = nil
	mirror.republishLocked()
	mirror.mu.Unlock()

	if surface != nil && !surface.Closed() {
		surface.Close()
	}
}

// IsOpen re-checks surface liveness.
func (mirror *Mirror) IsOpen() bool {
	return mirror.liveSurface() != nil
}

// Push overwrites the shared snapshot and delivers state directly. Without a
// live surface it does nothing.
func (mirror *Mirror) Push(state Projection) {
	surface := mirror.liveSurface()
	if surface == nil {
		return
	}
	state.IsOpen = true
	mirror.write(state)
	surface.Deliver(UpdateMessage(state))
}

// Publish records state under LiveKey for read-only observers such as the
// browser view. Unlike Push it writes whether or not a surface is open.
func (mirror *Mirror) Publish(state Projection) {
	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	mirror.live = state
	mirror.published = true
	mirror.republishLocked()
}

// Sweep drops a handle whose surface was closed externally and reports
// whether it did.
func (mirror *Mirror) Sweep() bool {
	mirror.mu.Lock()
	if mirror.surface == nil || !mirror.surface.Closed() {
		mirror.mu.Unlock()
		return false
	}
	mirror.surface = nil
	mirror.republishLocked()
	onStale := mirror.onStale
	mirror.mu.Unlock()

	mirror.logger.Debug("floating window closed externally")
	if onStale != nil {
		onStale()
	}
	return true
}

// Run sweeps on a fixed cadence until ctx is done.
func (mirror *Mirror) Run(ctx context.Context) {
	ticker := time.NewTicker(mirror.options.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mirror.Sweep()
		}
	}
}

func (mirror *Mirror) liveSurface() Surface {
	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	if mirror.surface == nil || mirror.surface.Closed() {
		return nil
	}
	return mirror.surface
}

// republishLocked rewrites LiveKey with the current surface liveness.
func (mirror *Mirror) republishLocked() {
	if !mirror.published {
		return
	}
	mirror.live.IsOpen = mirror.surface != nil && !mirror.surface.Closed()
	data, err := Encode(mirror.live)
	if err != nil {
		mirror.logger.Warn("live projection not stored", zap.Error(err))
		return
	}
	mirror.store.Set(LiveKey, data)
}

func (mirror *Mirror) write(state Projection) {
	data, err := Encode(state)
	if err != nil {
		mirror.logger.Warn("projection not stored", zap.Error(err))
		return
	}
	mirror.store.Set(StateKey, data)
}
