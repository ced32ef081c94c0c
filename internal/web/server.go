// Package web serves the operator page for `teamtab ui`.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/teamtab/internal/config"
	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/web/middleware"
)

// Server is the HTTP server for the operator page.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	if s.cfg.UI.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.UI.RequestTimeout))
	}
	s.router.Use(securityHeaders(s.cfg.UI.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlePage)

	s.router.Route("/api", func(r chi.Router) {
		// Loading
		r.Post("/load/mock", s.handleLoadMock)
		r.Post("/load/file", s.handleLoadFile)
		r.Post("/load/remote", s.handleLoadRemote)
		r.Post("/clear", s.handleClear)

		// Reading
		r.Get("/rows", s.handleRows)
		r.Get("/preview", s.handlePreview)
		r.Get("/layouts", s.handleLayouts)
		r.Get("/status", s.handleStatus)

		// Export
		r.Get("/export/tsv", s.handleExportTSV)
		r.Get("/export/xlsx", s.handleExportXLSX)
	})
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.UI.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.UI.ReadTimeout,
		WriteTimeout: s.cfg.UI.WriteTimeout,
		IdleTimeout:  s.cfg.UI.IdleTimeout,
	}

	slog.Info("operator page listening", "addr", "http://"+s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Inline styles and the copy script are part of the page.
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
