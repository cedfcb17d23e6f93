// Package web serves a read-only browser view of the floating timer.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"focusboard/internal/ephemeral"
	"focusboard/internal/mirror"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	heartbeatInterval = 15 * time.Second
	shutdownTimeout   = 2 * time.Second
	watchBuffer       = 16
)

var ErrNotLoopback = errors.New("web mirror must bind to a loopback address")

// Server exposes the timer projection held in the ephemeral store.
type Server struct {
	logger    *zap.Logger
	store     *ephemeral.Store
	heartbeat time.Duration
	router    chi.Router
}

// NewServer builds the router. It never writes to store.
func NewServer(logger *zap.Logger, store *ephemeral.Store) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := &Server{
		logger:    logger.Named("web"),
		store:     store,
		heartbeat: heartbeatInterval,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(server.logRequests)

	r.Get("/timer-popup", server.servePage)
	r.Get("/timer-popup/state", server.serveState)
	r.Get("/timer-popup/events", server.streamEvents)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	server.router = r
	return server
}

// Handler returns the HTTP handler.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Serve listens on addr until ctx is done. Open event streams end with ctx.
func (server *Server) Serve(ctx context.Context, addr string) error {
	if err := checkLoopback(addr); err != nil {
		return err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return server.serveListener(ctx, listener)
}

func (server *Server) serveListener(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           server.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	server.logger.Info("web mirror listening", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve web mirror: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web mirror: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve web mirror: %w", err)
	}
	return nil
}

func (server *Server) snapshot() mirror.Projection {
	data, ok := server.store.Get(mirror.LiveKey)
	if !ok {
		return mirror.DefaultProjection()
	}
	state, err := mirror.Decode(data)
	if err != nil {
		server.logger.Debug("stored projection unreadable", zap.Error(err))
		return mirror.DefaultProjection()
	}
	return state
}

func (server *Server) serveState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, server.snapshot(), http.StatusOK)
}

func (server *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Watch before reading the snapshot so no write falls between them.
	changes, cancel := server.store.Watch(watchBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, mirror.UpdateMessage(server.snapshot())); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(server.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case change, ok := <-changes:
			if !ok {
				return
			}
			if change.Key != mirror.LiveKey || change.Deleted {
				continue
			}
			state, err := mirror.Decode(change.Value)
			if err != nil {
				server.logger.Debug("skipping unreadable projection", zap.Error(err))
				continue
			}
			if err := writeEvent(w, mirror.UpdateMessage(state)); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, message mirror.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

func (server *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(wrapped, r)
		server.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.Status()),
			zap.Duration("duration", time.Since(started)),
		)
	})
}

func respondJSON(w http.ResponseWriter, body any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("parse web address %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotLoopback, addr)
}
