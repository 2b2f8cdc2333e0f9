// Package api serves the read-side HTTP surface: course and round lookups,
// live standings, the leaderboard, and trend charts. Mutations go through
// the event bus, not this server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	courseservice "github.com/Black-And-White-Club/fairway-bot/app/modules/course/application"
	leaderboardservice "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/application"
	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/fairway-bot/app/modules/round/application"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	scoringservice "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/application"
	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/config"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
)

// Services is the read surface the server exposes.
type Services struct {
	Courses     courseservice.Service
	Rounds      roundservice.Service
	Scoring     scoringservice.Service
	Leaderboard leaderboardservice.Service
}

// Server is the HTTP read API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the chi router and wraps it in an http.Server.
func NewServer(cfg config.HTTPConfig, obs *observability.Observability, services Services) *Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if cfg.RateLimit > 0 {
		r.Use(RateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	h := &handlers{services: services, logger: obs.Logger}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/courses", h.listCourses)
		r.Get("/rounds/{roundID}", h.getRound)
		r.Get("/rounds/{roundID}/standings", h.getStandings)
		r.Get("/leaderboard", h.getLeaderboard)
		r.Get("/golfers/{golferID}/trend.png", h.getTrendChart)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: obs.Logger,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP API listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type handlers struct {
	services Services
	logger   *slog.Logger
}

func (h *handlers) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.services.Courses.ListCourses(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list courses: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, courses)
}

func (h *handlers) getRound(w http.ResponseWriter, r *http.Request) {
	roundID := sharedtypes.RoundID(chi.URLParam(r, "roundID"))

	round, err := h.services.Rounds.GetRound(r.Context(), roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrRoundNotFound) {
			http.Error(w, "Round not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch round: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, round)
}

func (h *handlers) getStandings(w http.ResponseWriter, r *http.Request) {
	roundID := sharedtypes.RoundID(chi.URLParam(r, "roundID"))

	standings, err := h.services.Scoring.GetStandings(r.Context(), roundID)
	if err != nil {
		if errors.Is(err, scoringdb.ErrStandingsNotFound) || errors.Is(err, scoringdb.ErrRoundStateNotFound) {
			http.Error(w, "No standings for round", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch standings: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, standings)
}

func (h *handlers) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.Leaderboard.GetLeaderboard(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch leaderboard: %v", err), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []leaderboarddb.Entry{}
	}
	writeJSON(w, entries)
}

func (h *handlers) getTrendChart(w http.ResponseWriter, r *http.Request) {
	golferID := sharedtypes.GolferID(chi.URLParam(r, "golferID"))

	png, err := h.services.Leaderboard.RenderTrendChart(r.Context(), golferID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render trend chart: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
