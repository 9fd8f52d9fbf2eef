// Package server runs the blog function behind a local net/http server so
// the site can be developed without deploying.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/logger"
	bloghttp "github.com/brendan.keane/notion-blog/pkg/http"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const (
	HealthPath  = "/health"
	OpenAPIPath = "/openapi.yaml"

	shutdownTimeout = 5 * time.Second
)

// Server wires the function handler, the API description and a health
// check onto one mux.
type Server struct {
	logger   zerolog.Logger
	cfg      config.ServeConfig
	function http.Handler
	apiDoc   []byte
}

// New creates a dev server. apiDoc is served as-is at /openapi.yaml.
func New(log zerolog.Logger, cfg *config.Config, function http.Handler, apiDoc []byte) *Server {
	return &Server{
		logger:   logger.ForComponent(log, "server"),
		cfg:      cfg.Serve,
		function: function,
		apiDoc:   apiDoc,
	}
}

// Handler returns the full middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	path := s.cfg.FunctionPath
	if path == "" {
		path = config.DefaultFunctionPath
	}
	mux.Handle(path, s.function)

	mux.HandleFunc(OpenAPIPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(s.apiDoc)
	})

	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", bloghttp.RequestIDHeader},
		ExposedHeaders: []string{bloghttp.RequestIDHeader},
	})

	return s.logRequests(c.Handler(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to listen").
			WithContext("addr", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("dev server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, errors.ErrorTypeNetwork, "dev server failed")
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "dev server shutdown failed")
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests stamps every request with an ID and logs its outcome
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(bloghttp.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(bloghttp.RequestIDHeader, requestID)
		}
		w.Header().Set(bloghttp.RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
