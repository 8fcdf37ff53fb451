// Package api is the HTTP transport for the mentor gateway.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cedarpro/cybermentor/internal/config"
	"github.com/cedarpro/cybermentor/internal/mentor"
)

// Server wires the mentor gateway to its HTTP surface.
type Server struct {
	cfg    *config.Config
	mentor *mentor.Service
	router *chi.Mux
}

// NewServer creates the HTTP server around an injected gateway.
func NewServer(cfg *config.Config, svc *mentor.Service) *Server {
	s := &Server{cfg: cfg, mentor: svc}
	s.setupRouter()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.cfg.IsDevelopment() {
		r.Use(s.requestLogger)
	}
	r.Use(middleware.Recoverer)

	// The API is open to any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		MaxAge:         300,
		// Let OPTIONS reach the router so non-preflight OPTIONS also
		// answer 200.
		OptionsPassthrough: true,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"error": fmt.Sprintf("Method %s not allowed", r.Method),
		})
	})

	// Plain OPTIONS (non-preflight) answers 200 with an empty body;
	// preflights are answered by the CORS middleware before reaching here.
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/mentor/chat", s.handleChat)
	r.Post("/api/mentor/generate-practice", s.handleGeneratePractice)
	r.Post("/api/mentor/generate-assessment", s.handleGenerateAssessment)

	if s.cfg.StaticDir != "" && !s.cfg.IsDevelopment() {
		s.mountStatic(r)
	}

	s.router = r
}

// requestLogger logs API requests; static assets stay quiet.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// mountStatic serves the built web client for non-API paths, falling back
// to index.html so client-side routes resolve.
func (s *Server) mountStatic(r *chi.Mux) {
	fs := http.FileServer(http.Dir(s.cfg.StaticDir))
	index := filepath.Join(s.cfg.StaticDir, "index.html")

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(s.cfg.StaticDir, filepath.Clean("/"+req.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, req)
			return
		}
		http.ServeFile(w, req, index)
	})
}
