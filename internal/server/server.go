// Package server exposes the aggregation pipeline over HTTP for dashboard
// polling. Results are pull-based: clients query, the server answers from
// the cache or recomputes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oldg9516/ai-agents-stats/internal/logging"
	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/pipeline"
	"github.com/oldg9516/ai-agents-stats/internal/source"
	"github.com/oldg9516/ai-agents-stats/internal/stats"
	"github.com/oldg9516/ai-agents-stats/internal/worker"
)

// Server hosts the statistics API.
type Server struct {
	pipeline *pipeline.Pipeline
	limiter  *worker.ClientLimiter
	log      *logging.Logger
	cfg      model.ServerConfig

	httpServer *http.Server
	cron       *cron.Cron
}

// New builds a server around an already-constructed pipeline.
func New(p *pipeline.Pipeline, cfg model.ServerConfig, log *logging.Logger) *Server {
	s := &Server{
		pipeline: p,
		limiter:  worker.NewClientLimiter(cfg.RatePerSecond, cfg.Burst),
		log:      log,
		cfg:      cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("GET /api/v1/report", s.handleReport)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withLogging(s.withRateLimit(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully. When a refresh schedule is configured, a cron job warms the
// result cache in the background.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.RefreshSpec != "" {
		s.cron = cron.New()
		_, err := s.cron.AddFunc(s.cfg.RefreshSpec, func() {
			if err := s.pipeline.Refresh(context.Background()); err != nil {
				s.log.WithError(err).Warn("scheduled refresh failed")
			}
		})
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", s.cfg.RefreshSpec, err)
		}
		s.cron.Start()
		s.log.WithField("schedule", s.cfg.RefreshSpec).Info("cache refresh scheduled")
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.cron != nil {
		s.cron.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStats computes (or serves from cache) one mode's statistics.
// Query parameters: mode, from, to (RFC 3339), category.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	mode, q, err := parseStatsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.pipeline.Run(r.Context(), mode, q)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.log.WithError(err).Error("stats computation failed")
		writeError(w, http.StatusInternalServerError, errors.New("stats computation failed"))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleReport is handleStats plus the optional insight narrative.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	mode, q, err := parseStatsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.pipeline.Run(r.Context(), mode, q)
	if err != nil {
		s.log.WithError(err).Error("report computation failed")
		writeError(w, http.StatusInternalServerError, errors.New("report computation failed"))
		return
	}

	writeJSON(w, http.StatusOK, s.pipeline.BuildReport(r.Context(), result))
}

func parseStatsQuery(r *http.Request) (stats.Mode, source.Query, error) {
	mode, err := stats.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return "", source.Query{}, err
	}

	var q source.Query
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return "", source.Query{}, fmt.Errorf("invalid from: %w", err)
		}
		q.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return "", source.Query{}, fmt.Errorf("invalid to: %w", err)
		}
		q.To = t
	}
	q.Category = r.URL.Query().Get("category")

	return mode, q, nil
}

// withLogging logs each request with a request ID and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := s.log.WithRequest(r)
		next.ServeHTTP(w, r)
		entry.WithField("duration", time.Since(start).String()).Info("request")
	})
}

// withRateLimit rejects clients that exceed the per-address budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}
		if !s.limiter.Allow(client) {
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
