// Package rest exposes the question and answer services over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// HealthFunc reports whether the server can serve traffic.
type HealthFunc func(ctx context.Context) error

type Server struct {
	address   string
	logger    logging.Logger
	questions *services.QuestionService
	answers   *services.AnswerService
	accounts  *services.AccountService
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	health    HealthFunc
}

type Option func(*Server)

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

func WithHealth(f HealthFunc) Option {
	return func(s *Server) { s.health = f }
}

func NewServer(address string, l logging.Logger, qs *services.QuestionService, as *services.AnswerService, acs *services.AccountService, opts ...Option) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		questions: qs,
		answers:   as,
		accounts:  acs,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID"},
	}))

	r.Post("/registration", s.handleRegistration)
	r.Post("/login", s.handleLogin)

	r.Route("/questions", func(r chi.Router) {
		r.Get("/", s.handleListQuestions)
		r.Post("/", s.handleCreateQuestion)
		r.Get("/{id}", s.handleGetQuestion)
		r.Put("/{id}", s.handleUpdateQuestion)
		r.Delete("/{id}", s.handleDeleteQuestion)
		r.Get("/{id}/answers", s.handleListAnswers)
	})

	r.Route("/answers", func(r chi.Router) {
		r.Post("/", s.handleCreateAnswer)
		r.Get("/{id}", s.handleGetAnswer)
		r.Put("/{id}", s.handleUpdateAnswer)
		r.Delete("/{id}", s.handleDeleteAnswer)
	})

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves HTTP until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errc <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-errc
}
