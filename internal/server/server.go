// Package server exposes the auto-log endpoint used by the browser extension
// and read-only JSON views over the same store.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/faizmokh/minitrack/internal/cache"
	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/report"
	"github.com/faizmokh/minitrack/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Store          storage.Store
	Secret         []byte
	AllowedOrigins []string
	Start          time.Time
	Thresholds     calendar.Thresholds
	CacheTTL       time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Server serves the HTTP API.
type Server struct {
	store      storage.Store
	secret     []byte
	origins    map[string]struct{}
	start      time.Time
	thresholds calendar.Thresholds
	clock      func() time.Time
	dashboards *cache.TTL[string, report.Dashboard]
}

// New builds a server from opts.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if len(opts.Secret) == 0 {
		return nil, errors.New("server: MINITRACK_JWT_SECRET is required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		origins[origin] = struct{}{}
	}
	return &Server{
		store:      opts.Store,
		secret:     opts.Secret,
		origins:    origins,
		start:      opts.Start,
		thresholds: opts.Thresholds,
		clock:      clock,
		dashboards: cache.NewTTL[string, report.Dashboard](opts.CacheTTL, clock),
	}, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("OPTIONS /api/auto-log", s.handleAutoLogPreflight)
	mux.HandleFunc("POST /api/auto-log", s.handleAutoLog)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/tracker", s.handleTracker)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("minitrack server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Printf("minitrack server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
