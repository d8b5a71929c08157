package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/cors"

	"github.com/chek-project/chek-kma/pkg/service/metrics"
	"github.com/chek-project/chek-kma/pkg/usecase"
	"github.com/chek-project/chek-kma/pkg/utils/async"
	"github.com/chek-project/chek-kma/pkg/utils/logging"
)

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	metrics        *metrics.Metrics
	dispatcher     *async.Dispatcher
	allowedOrigins []string
	secureCookie   bool
}

type Options func(*Server)

func WithMetrics(m *metrics.Metrics) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithAllowedOrigins enables CORS with credentials for the given origins
func WithAllowedOrigins(origins []string) Options {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithDispatcher(d *async.Dispatcher) Options {
	return func(s *Server) {
		s.dispatcher = d
	}
}

// WithSecureCookie marks the session cookie Secure
func WithSecureCookie(secure bool) Options {
	return func(s *Server) {
		s.secureCookie = secure
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()
	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatcher == nil {
		s.dispatcher = async.NewDispatcher()
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   s.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler)
	}
	r.Use(s.sessionMiddleware)

	// Pages
	r.Get("/login", s.loginPageHandler)
	r.Post("/login", s.loginFormHandler)
	r.Group(func(r chi.Router) {
		r.Use(requirePageSession)
		r.Get("/", homeHandler)
		r.Get("/welcome", s.welcomePageHandler)
		r.Get("/projects/{id}", s.projectPageHandler)
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Post("/session", s.createSessionHandler)
		r.Get("/benchmarks", s.benchmarksHandler)
		r.Get("/questions", s.questionsHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAPISession)
			r.Delete("/session", s.deleteSessionHandler)
			r.Post("/projects/load", s.loadProjectsHandler)
			r.Get("/projects", s.projectsHandler)
			r.Post("/projects/{id}/maturity/load", s.loadMaturityHandler)
			r.Get("/projects/{id}/maturity", s.maturityHandler)
		})
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Wait blocks until dispatched background loads finished
func (s *Server) Wait() {
	s.dispatcher.Wait()
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
