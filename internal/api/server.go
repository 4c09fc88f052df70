package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ytwebhook/internal/cookies"
	"ytwebhook/internal/extractor"
	"ytwebhook/internal/metrics"
	"ytwebhook/internal/staging"
	"ytwebhook/pkg/models"
)

var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrServerNotRunning     = errors.New("server is not running")
)

// Server represents the HTTP server
type Server struct {
	config    *models.Config
	staging   *staging.Manager
	extractor *extractor.Extractor
	cookies   *cookies.Provisioner
	metrics   *metrics.Registry
	router    *chi.Mux
	server    *http.Server
	listener  net.Listener
	running   bool
	mu        sync.RWMutex
}

// NewServer creates a new HTTP server
func NewServer(cfg *models.Config, stagingMgr *staging.Manager) *Server {
	s := &Server{
		config:    cfg,
		staging:   stagingMgr,
		extractor: extractor.New(cfg),
		cookies:   cookies.NewProvisioner(cfg.CookieSource),
		metrics:   metrics.NewRegistry(),
		router:    chi.NewRouter(),
	}

	s.setupRoutes()

	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/file/{filename}", s.handleFile)
	s.router.Handle("/metrics", s.metrics.Handler())

	// The engine call is the one long-running operation; the timeout
	// here is the caller-visible bound on it. Cancellation of the
	// engine process is best-effort only.
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
		r.Post("/download", s.handleDownload)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	s.running = true

	srv := s.server
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrServerNotRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.running = false
	s.server = nil
	s.listener = nil

	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// GetActualAddr returns the actual listening address (useful when the
// configured port is 0)
func (s *Server) GetActualAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.config.ListenAddr
}
