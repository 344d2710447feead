// Package mockapi serves a fixture-backed stand-in for the search backend so
// the client can be demoed and tested without the real service.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
)

const (
	// EasterEggText triggers the easter egg answer (case-insensitive)
	EasterEggText = "easteregg"

	EasterEggQuery   = "🚀 Congratulations, you rolled the demo!"
	EasterEggSummary = "You just got rick-rolled..."

	CachePrefix     = "🛰️ RETRIEVED FROM CACHE: "
	GeneratedPrefix = "✨ GENERATED: "

	FailedQuery   = "Not able to construct query..."
	FailedSummary = "💥 Oh no... We couldn't create a GraphQL query from your input!"
)

type cachedResult struct {
	graphQuery string
	results    []healthsearch.Product
	summary    string
}

// Server is the demo backend HTTP handler
type Server struct {
	router   chi.Router
	fixtures *Fixtures
	latency  time.Duration

	mu         sync.Mutex
	requests   int
	healthy    bool
	cache      map[string]cachedResult
	cacheOrder []string
}

// Option configures a Server
type Option func(*Server)

// WithLatency delays every /generate_query answer by d
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// NewServer creates a demo backend serving fixtures
func NewServer(fixtures *Fixtures, opts ...Option) *Server {
	s := &Server{
		fixtures: fixtures,
		healthy:  true,
		cache:    make(map[string]cachedResult),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, q := range fixtures.Cached {
		if e, ok := fixtures.Match(q); ok {
			s.addCache(normalize(q), cachedResult{graphQuery: e.GraphQuery, results: e.Results, summary: e.Summary})
		}
	}

	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Post("/generate_query", s.handleGenerateQuery)

	s.router = r
}

// SetHealthy switches /health between 200 and 503
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = healthy
}

// Requests returns the number of /generate_query calls served
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// CachedQueries returns the cached natural queries in insertion order
func (s *Server) CachedQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.cacheOrder))
	copy(out, s.cacheOrder)
	return out
}

// addCache must be called with mu held or before the server is shared
func (s *Server) addCache(query string, res cachedResult) {
	if _, exists := s.cache[query]; !exists {
		s.cacheOrder = append(s.cacheOrder, query)
	}
	s.cache[query] = res
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		loggy.Info("demo backend listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving demo backend: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		loggy.Info("shutting down demo backend")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		loggy.With("request_id", r.Header.Get(healthsearch.RequestIDHeader)).
			WithGroup("http").
			Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
	})
}
