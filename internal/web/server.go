// Package web provides the optional HTTP view over the price catalog.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/JonMunkholm/pricelist/internal/config"
	"github.com/JonMunkholm/pricelist/internal/core"
	weblog "github.com/JonMunkholm/pricelist/internal/web/middleware"
)

// errRateLimited is mapped to RATE001 by core.MapError.
var errRateLimited = errors.New("rate limit exceeded")

// Server is the HTTP server for the catalog view.
type Server struct {
	service *core.Service
	cfg     config.HTTPConfig
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance listening on cfg.Addr once started.
func NewServer(service *core.Service, cfg config.HTTPConfig) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(weblog.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)

	// Rate limiting: RateLimit requests per minute per IP, 0 disables
	if s.cfg.RateLimit > 0 {
		s.router.Use(httprate.Limit(
			s.cfg.RateLimit,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "60")
				s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
			}),
		))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Post("/reload", s.handleReloadPage)

	// Downloads
	s.router.Get("/export.html", s.handleExportHTML)
	s.router.Get("/export.xlsx", s.handleExportXLSX)

	s.router.Get("/healthz", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Post("/reload", s.handleReload)
	})
}

// Start begins listening for HTTP requests. It returns http.ErrServerClosed
// after Shutdown, including a Shutdown that happened before Start.
func (s *Server) Start() error {
	slog.Info("http view listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server. It is safe to call from another
// goroutine at any time relative to Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")

		// No scripts at all; the page is plain forms and a table
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; form-action 'self'")
		w.Header().Set("Referrer-Policy", "no-referrer")

		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
