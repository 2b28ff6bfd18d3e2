// Package server exposes the HTTP API: public submission and status
// endpoints, and token-protected queue endpoints for remote workers.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"voxlog/internal/config"
	"voxlog/internal/logging"
	"voxlog/internal/queue"
	"voxlog/internal/services"
	"voxlog/internal/worker"
)

// Server hosts the voxlog HTTP API on top of the queue store.
type Server struct {
	store      *queue.Store
	publisher  worker.Publisher
	token      string
	bind       string
	submitHook func()
	logger     *slog.Logger
	http       *http.Server
}

// Option adjusts server construction.
type Option func(*Server)

// WithSubmitHook registers a callback invoked after each accepted
// submission. The embedded worker registers its wake nudge here so a local
// submit is picked up without waiting out the poll interval.
func WithSubmitHook(fn func()) Option {
	return func(s *Server) { s.submitHook = fn }
}

// New constructs an HTTP server. publisher may be nil only when no worker
// will ever report completions to this process.
func New(cfg *config.Config, store *queue.Store, publisher worker.Publisher, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		store:     store,
		publisher: publisher,
		token:     cfg.Server.APIToken,
		bind:      cfg.Paths.APIBind,
		logger:    logging.NewComponentLogger(logger, "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http = &http.Server{
		Addr:              s.bind,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router. Exposed for handler tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Post("/submit", s.handleSubmit)
		r.Get("/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/health", s.handleHealth)

		r.Route("/queue", func(r chi.Router) {
			r.Use(s.requireWorkerToken)
			r.Get("/next", s.handleClaimNext)
			r.Post("/{jobID}/complete", s.handleComplete)
			r.Post("/{jobID}/fail", s.handleFail)
		})
	})
	return r
}

// ListenAndServe blocks until the context is canceled or the listener fails,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return err
	}
	s.logger.Info("http server listening", logging.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		r = r.WithContext(services.WithRequestID(r.Context(), middleware.GetReqID(r.Context())))
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String(logging.FieldCorrelationID, middleware.GetReqID(r.Context())))
	})
}
