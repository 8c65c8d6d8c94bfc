package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/examkit/internal/config"
	"github.com/terra-clan/examkit/internal/content"
	"github.com/terra-clan/examkit/internal/images"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	content        *content.Service
	images         *images.Resolver
	decoder        images.Decoder
	authMiddleware *AuthMiddleware
}

// Option configures optional server collaborators
type Option func(*Server)

// WithImageDecoder enables the image info endpoint
func WithImageDecoder(d images.Decoder) Option {
	return func(s *Server) {
		s.decoder = d
	}
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	svc *content.Service,
	resolver *images.Resolver,
	auth config.AuthConfig,
	opts ...Option,
) *Server {
	s := &Server{
		config:         cfg,
		content:        svc,
		images:         resolver,
		authMiddleware: NewAuthMiddleware(auth.APIKeys),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "If-None-Match", "X-API-Key", "X-Request-ID"},
		ExposedHeaders: []string{"ETag", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware.Authenticate)

		r.Get("/categories", s.handleListCategories)
		r.Route("/categories/{category}", func(r chi.Router) {
			r.Get("/tickets", s.handleListTickets)
			r.Get("/tickets/{number}", s.handleGetTicket)
			r.Get("/topics", s.handleListTopics)
			r.Get("/questions", s.handleListQuestions)
		})

		r.Get("/signs", s.handleListSigns)
		r.Get("/markups", s.handleListMarkups)

		r.Get("/image", s.handleGetImage)
		r.Get("/image/info", s.handleGetImageInfo)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
