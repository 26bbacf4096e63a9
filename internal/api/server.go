// Package api provides the HTTP API server, router, and auth for keapilot.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/audit"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/config"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/radius"
)

// Server is the HTTP API server for keapilot.
type Server struct {
	cfg        *config.Config
	auditLog   *audit.Log
	logger     *slog.Logger
	httpServer *http.Server
	auth       *AuthMiddleware
	startTime  time.Time
	version    string
}

// NewServer creates a new API server.
func NewServer(cfg *config.Config, auditLog *audit.Log, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:       cfg,
		auditLog:  auditLog,
		logger:    logger,
		startTime: time.Now(),
		version:   "dev",
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.auth == nil {
		s.auth = NewAuthMiddleware(cfg, nil, logger)
	}
	s.auth.onLogin = s.recordLogin

	return s
}

// recordLogin appends a login attempt to the audit trail.
func (s *Server) recordLogin(username, backend, outcome string) {
	if s.auditLog == nil {
		return
	}
	s.auditLog.Append(audit.Record{
		Action:  audit.ActionLogin,
		User:    username,
		Outcome: outcome,
		Detail:  "backend=" + backend,
	})
}

// ServerOption configures optional Server fields.
type ServerOption func(*Server)

// WithVersion sets the server version string.
func WithVersion(v string) ServerOption {
	return func(s *Server) { s.version = v }
}

// WithRADIUSClient enables the RADIUS login backend.
func WithRADIUSClient(rc *radius.Client) ServerOption {
	return func(s *Server) { s.auth = NewAuthMiddleware(s.cfg, rc, s.logger) }
}

// Listen binds the API server to its configured address and prepares routes.
// Call this synchronously to catch port conflicts before starting background
// serve.
func (s *Server) Listen() (net.Listener, error) {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Handler:      newMetricsMiddleware(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ln, err := net.Listen("tcp", s.cfg.Server.Listen)
	if err != nil {
		return nil, fmt.Errorf("binding API server to %s: %w", s.cfg.Server.Listen, err)
	}

	s.logger.Info("API server listening", "address", ln.Addr().String())
	return ln, nil
}

// Serve accepts connections on the listener. Blocks until shutdown.
func (s *Server) Serve(ln net.Listener) error {
	var err error
	if s.cfg.API.TLS.Enabled {
		err = s.httpServer.ServeTLS(ln, s.cfg.API.TLS.CertFile, s.cfg.API.TLS.KeyFile)
	} else {
		err = s.httpServer.Serve(ln)
	}
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("API server: %w", err)
	}
	return nil
}

// Start is a convenience that calls Listen + Serve. Blocks until shutdown.
func (s *Server) Start() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Prometheus metrics (no auth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Health check (no auth)
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	// Auth (these handle their own credentials)
	mux.HandleFunc("POST /api/v1/auth/login", s.auth.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", s.auth.handleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", s.auth.handleMe)

	// Validation endpoints are read-only, any authenticated role
	mux.HandleFunc("POST /api/v1/validate/subnet", s.auth.RequireAuth(s.handleValidateSubnet))
	mux.HandleFunc("POST /api/v1/validate/pool", s.auth.RequireAuth(s.handleValidatePool))
	mux.HandleFunc("POST /api/v1/validate/reservation", s.auth.RequireAuth(s.handleValidateReservation))
	mux.HandleFunc("POST /api/v1/validate/client-class", s.auth.RequireAuth(s.handleValidateClientClass))
	mux.HandleFunc("POST /api/v1/validate/option-def", s.auth.RequireAuth(s.handleValidateOptionDef))
	mux.HandleFunc("POST /api/v1/validate/option", s.auth.RequireAuth(s.handleValidateOption))
	mux.HandleFunc("POST /api/v1/validate/options", s.auth.RequireAuth(s.handleValidateOptionList))
	mux.HandleFunc("POST /api/v1/pools/check-overlap", s.auth.RequireAuth(s.handleCheckOverlap))

	// Envelope preparation produces commands that leave the console, admin only
	mux.HandleFunc("POST /api/v1/envelopes/subnet", s.auth.RequireAdmin(s.handleEnvelopeSubnet))
	mux.HandleFunc("POST /api/v1/envelopes/reservation", s.auth.RequireAdmin(s.handleEnvelopeReservation))
	mux.HandleFunc("POST /api/v1/envelopes/client-class", s.auth.RequireAdmin(s.handleEnvelopeClientClass))

	// Vendor option payloads
	mux.HandleFunc("POST /api/v1/vendor/tr069", s.auth.RequireAuth(s.handleVendorTR069))
	mux.HandleFunc("POST /api/v1/vendor/raw", s.auth.RequireAuth(s.handleVendorRaw))

	// Audit log
	mux.HandleFunc("GET /api/v1/audit", s.auth.RequireAuth(s.handleAuditQuery))
}

// handleHealth reports liveness and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
	})
}

// JSONResponse writes a JSON response with the given status code.
func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// JSONError writes a JSON error response.
func JSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
