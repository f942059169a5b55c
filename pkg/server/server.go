// Package server exposes the quote engine over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"flowswap/pkg/ledger"
	"flowswap/pkg/metrics"
	"flowswap/pkg/quote"
	"flowswap/pkg/swap"
	"flowswap/pkg/token"
	"flowswap/pkg/vault"
)

// Server is the HTTP surface of the quote engine.
type Server struct {
	registry *token.Registry
	cache    *quote.Cache
	executor *swap.Executor
	store    *swap.Store
	ledger   ledger.Client
	scanner  *vault.Scanner
	metrics  *metrics.Metrics
	logger   *slog.Logger

	httpServer *http.Server
}

// Config holds the server's collaborators. Scanner and Metrics may be nil.
type Config struct {
	ListenAddr string
	Registry   *token.Registry
	Cache      *quote.Cache
	Executor   *swap.Executor
	Store      *swap.Store
	Ledger     ledger.Client
	Scanner    *vault.Scanner
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

// New creates the server and its route table.
func New(cfg Config) *Server {
	s := &Server{
		registry: cfg.Registry,
		cache:    cfg.Cache,
		executor: cfg.Executor,
		store:    cfg.Store,
		ledger:   cfg.Ledger,
		scanner:  cfg.Scanner,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.Handle("GET /api/v1/tokens", s.instrument("/api/v1/tokens", s.handleListTokens()))
	mux.Handle("GET /api/v1/balances", s.instrument("/api/v1/balances", s.handleBalances()))
	mux.Handle("POST /api/v1/quote", s.instrument("/api/v1/quote", s.handleRequestQuote()))
	mux.Handle("POST /api/v1/quote/refresh", s.instrument("/api/v1/quote/refresh", s.handleRefreshQuote()))
	mux.Handle("GET /api/v1/quote/valid", s.instrument("/api/v1/quote/valid", s.handleQuoteValidity()))
	mux.Handle("POST /api/v1/swap", s.instrument("/api/v1/swap", s.handleExecuteSwap()))
	mux.Handle("GET /api/v1/transactions", s.instrument("/api/v1/transactions", s.handleListTransactions()))
	mux.Handle("GET /api/v1/transactions/{id}", s.instrument("/api/v1/transactions/{id}", s.handleGetTransaction()))
	mux.Handle("GET /api/v1/vaults/{address}", s.instrument("/api/v1/vaults/{address}", s.handleVaultPosition()))
	mux.Handle("GET /health", s.handleHealth())
	mux.Handle("GET /metrics", s.metrics.Handler())
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// instrument counts requests per route and status code.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.HTTPRequest(route, fmt.Sprintf("%d", rec.status))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer's
// Flusher/Hijacker capabilities.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
