// Package server exposes the codec over HTTP.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/config"
	"github.com/dhruvd-1/semtok/pkg/errors"
	"github.com/dhruvd-1/semtok/pkg/evaluate"
	"github.com/dhruvd-1/semtok/pkg/generator"
	"github.com/dhruvd-1/semtok/pkg/logger"
	"github.com/dhruvd-1/semtok/pkg/ontology"
	"github.com/dhruvd-1/semtok/pkg/storage"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// Server is the semtok HTTP API.
type Server struct {
	cfg       config.ServerConfig
	codecCfg  config.CodecConfig
	ont       *ontology.Ontology
	codec     *codec.Codec
	evaluator *evaluate.Evaluator
	store     *storage.Store
	log       *zap.Logger

	httpServer *http.Server
}

// Option configures optional server collaborators.
type Option func(*Server)

// WithStore enables the envelope persistence endpoints.
func WithStore(store *storage.Store) Option {
	return func(s *Server) { s.store = store }
}

// New creates a server around one codec instance.
func New(cfg *config.Config, ont *ontology.Ontology, c *codec.Codec, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg.Server,
		codecCfg:  cfg.Codec,
		ont:       ont,
		codec:     c,
		evaluator: evaluate.New(c),
		log:       logger.With(zap.String("component", "server")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("GET /ontology", s.handleOntology)
	mux.HandleFunc("POST /compression/compress", s.handleCompress)
	mux.HandleFunc("POST /compression/decompress", s.handleDecompress)
	mux.HandleFunc("POST /compression/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.Handle("GET /metrics", promhttp.Handler())

	if s.store != nil {
		mux.HandleFunc("POST /envelopes", s.handleSaveEnvelope)
		mux.HandleFunc("GET /envelopes", s.handleListEnvelopes)
		mux.HandleFunc("GET /envelopes/{id}", s.handleGetEnvelope)
		mux.HandleFunc("DELETE /envelopes/{id}", s.handleDeleteEnvelope)
	}

	return s.withRequestID(s.withRecovery(mux))
}

// Start serves requests until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, errors.ErrorTypeConnection, "http server failed").
			WithDetail("addr", s.httpServer.Addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.ShutdownSec)*time.Second)
	defer cancel()

	s.log.Info("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "graceful shutdown failed")
	}
	return nil
}

// Handler returns the routed handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.WithContext(ctx).Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panicked",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path))
				writeError(w, errors.New(errors.ErrorTypeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) generatorFor(seed int64) *generator.Generator {
	return generator.New(s.ont, seed)
}
