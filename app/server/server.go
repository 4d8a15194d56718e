// Package server hosts the read-only HTTP surface: result reads, chart
// renders, health probes, and the Prometheus scrape endpoint. All writes
// flow through the event bus; nothing here mutates state.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	"github.com/Fifty-Move-Club/podium/config"
)

// Server wraps the HTTP listener serving the read API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewRouter mounts the read API onto a fresh chi router. Rate limiting and
// CORS apply to the /api subtree only; probes and /metrics stay open for
// orchestrators and scrapers.
func NewRouter(cfg *config.Config, registry *prometheus.Registry, handlers *ResultsHandlers) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", handlers.Healthz)
	r.Get("/readyz", handlers.Readyz)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	limiter := NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst)
	r.Route("/api/tournaments/{tournamentID}", func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.HTTP.CORSAllowedOrigins))
		r.Use(RateLimitMiddleware(limiter))

		r.Get("/awards", handlers.GetIndividualAwards)
		r.Get("/awards/chart.png", handlers.GetIndividualAwardsChart)
		r.Get("/team-prizes", handlers.GetTeamPrizes)
		r.Get("/team-prizes/{groupKey}/chart.png", handlers.GetTeamStandingsChart)
	})

	return r
}

// NewServer builds the HTTP server over the allocation services.
func NewServer(
	cfg *config.Config,
	obs observability.Observability,
	awardService awardservice.Service,
	institutionService institutionservice.Service,
	health HealthChecker,
) *Server {
	handlers := NewResultsHandlers(awardService, institutionService, health, obs.Provider.Logger)
	router := NewRouter(cfg, obs.Registry.Prometheus, handlers)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: obs.Provider.Logger,
	}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", attr.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
