package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"aircause/backend/pkg/chat"
	"aircause/backend/pkg/config"
	"aircause/backend/pkg/providers"
	"aircause/backend/pkg/proxy"
	"aircause/backend/pkg/proxy/handlers"
	"aircause/backend/pkg/proxy/middleware"
	"aircause/backend/pkg/telemetry/health"
	"aircause/backend/pkg/telemetry/metrics"
	"aircause/backend/pkg/telemetry/tracing"
)

// ChatPath is the route of the chat endpoint.
const ChatPath = "/api/chat"

// VersionPath is the route of the build information endpoint.
const VersionPath = "/version"

// Dependencies are the collaborators the server wires into its routes.
// Only Provider is required.
type Dependencies struct {
	Provider providers.Provider
	Prompts  *chat.Builder
	Metrics  *metrics.Collector
	Tracer   *tracing.Tracer
	Health   *health.Checker
	Version  health.VersionInfo
	Logger   *slog.Logger
}

// Server is the HTTP server for the chat backend.
type Server struct {
	config *config.Config
	deps   Dependencies

	httpServer   *http.Server
	listener     net.Listener
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server. It does not listen until Start is called.
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Provider == nil {
		return nil, errors.New("provider is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Health == nil {
		deps.Health = health.New(cfg.Telemetry.Health.CheckTimeout)
	}
	if deps.Prompts == nil {
		deps.Prompts = chat.NewBuilder(cfg.Assistant.SystemInstruction)
	}

	return &Server{config: cfg, deps: deps}, nil
}

// Start listens on the configured address and serves until ctx is cancelled
// or the listener fails. Cancelling ctx triggers a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(s.deps.Logger.Handler(), slog.LevelWarn),
	}
	s.isRunning = true
	s.mu.Unlock()

	port := listenerPort(ln)
	s.deps.Logger.Info("backend running",
		"url", "http://localhost:"+port,
		"port", port,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.deps.Logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		if !ok {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running := s.isRunning
		httpServer := s.httpServer
		s.mu.RUnlock()
		if !running || httpServer == nil {
			return
		}

		s.deps.Logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.deps.Logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.deps.Logger.Info("backend stopped")
	})

	return shutdownErr
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Outermost first.
	r.Use(
		middleware.RecoveryMiddleware,
		middleware.MetricsMiddleware(s.deps.Metrics),
		middleware.LoggingMiddleware,
		middleware.RequestIDMiddleware,
		middleware.TracingMiddleware(s.deps.Tracer),
		middleware.CORSMiddleware(s.config.Server.CORS),
		middleware.TimeoutMiddleware(s.config.Server.RequestTimeout),
	)

	opts := handlers.ChatOptionsFromConfig(s.config)
	opts.Metrics = s.deps.Metrics
	opts.Tracer = s.deps.Tracer
	r.Method(http.MethodPost, ChatPath, handlers.NewChatHandler(s.deps.Provider, s.deps.Prompts, opts))

	if hc := s.config.Telemetry.Health; hc.Enabled {
		r.Get(hc.LivenessPath, s.deps.Health.LivenessHandler())
		r.Get(hc.ReadinessPath, s.deps.Health.ReadinessHandler())
		r.Get(VersionPath, health.VersionHandler(s.deps.Version))
	}

	if mc := s.config.Telemetry.Metrics; mc.Enabled && s.deps.Metrics != nil {
		r.Method(http.MethodGet, mc.Path, s.deps.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		proxy.WriteErrorResponse(w, http.StatusNotFound, proxy.ErrorResponse{Error: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		proxy.WriteErrorResponse(w, http.StatusMethodNotAllowed, proxy.ErrorResponse{Error: "Method Not Allowed"})
	})

	return r
}

// Addr returns the bound listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning returns true if the server is serving requests.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func listenerPort(ln net.Listener) string {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return strconv.Itoa(addr.Port)
	}
	_, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		return ln.Addr().String()
	}
	return port
}
