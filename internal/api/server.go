// Package api serves the public prediction endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchcast/internal/analysis"
	"github.com/yourusername/matchcast/internal/config"
	"github.com/yourusername/matchcast/internal/metrics"
	"github.com/yourusername/matchcast/internal/models"
	"github.com/yourusername/matchcast/internal/repository"
	"github.com/yourusername/matchcast/internal/service"
)

const defaultMatchLimit = 50

// Server exposes the match, analysis and standings endpoints
type Server struct {
	repos       *repository.Repositories
	predictions *service.PredictionService
	server      *http.Server
	logger      logrus.FieldLogger
}

// NewServer creates the API server
func NewServer(cfg *config.APIConfig, repos *repository.Repositories, predictions *service.PredictionService, logger logrus.FieldLogger) *Server {
	s := &Server{
		repos:       repos,
		predictions: predictions,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/matches", s.instrument("matches", s.handleMatches))
	mux.HandleFunc("GET /api/matches/{id}/analysis", s.instrument("analysis", s.handleAnalysis))
	mux.HandleFunc("GET /api/standings", s.instrument("standings", s.handleStandings))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}
	return s
}

// Start begins serving. Blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("API server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// statusRecorder captures the response code for instrumentation
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		metrics.RecordAPIRequest(endpoint, strconv.Itoa(recorder.status), time.Since(start).Seconds())
	}
}

// matchEntry is one row of the upcoming-matches listing
type matchEntry struct {
	Fixture *models.Fixture    `json:"fixture"`
	Odds    *models.OddsRecord `json:"odds,omitempty"`
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	limit := defaultMatchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			s.writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	fixtures, err := s.repos.Fixture.GetUpcoming(r.Context(), limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load upcoming fixtures")
		s.writeError(w, http.StatusInternalServerError, "failed to load matches")
		return
	}

	entries := make([]matchEntry, 0, len(fixtures))
	for _, fixture := range fixtures {
		entry := matchEntry{Fixture: fixture}
		record, err := s.repos.Odds.GetLatestRecord(r.Context(), fixture.ID)
		switch {
		case err == nil:
			entry.Odds = record
		case errors.Is(err, models.ErrNotFound):
		default:
			s.logger.WithError(err).WithField("fixture_id", fixture.ID).Warn("Failed to load odds")
		}
		entries = append(entries, entry)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"matches": entries})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	fixtureID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid fixture id")
		return
	}

	toggles, err := parseToggles(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prediction, err := s.predictions.PredictFixture(r.Context(), fixtureID, toggles)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "fixture not found")
		return
	default:
		s.logger.WithError(err).WithField("fixture_id", fixtureID).Error("Analysis failed")
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	leagueParam := r.URL.Query().Get("league")
	if leagueParam == "" {
		s.writeError(w, http.StatusBadRequest, "league query parameter is required")
		return
	}
	leagueAPIID, err := strconv.Atoi(leagueParam)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "league must be a numeric id")
		return
	}

	league, err := s.repos.League.GetByAPIID(r.Context(), leagueAPIID)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "league not found")
		return
	default:
		s.logger.WithError(err).Error("Failed to load league")
		s.writeError(w, http.StatusInternalServerError, "failed to load league")
		return
	}

	standings, err := s.repos.Standing.GetByLeague(r.Context(), league.ID, league.Season)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load standings")
		s.writeError(w, http.StatusInternalServerError, "failed to load standings")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"league":    league,
		"standings": standings,
	})
}

// parseToggles reads the what-if switches off the query string. Absent
// parameters stay off; anything except a boolean literal is an error.
func parseToggles(r *http.Request) (analysis.Toggles, error) {
	var toggles analysis.Toggles
	params := []struct {
		name string
		dest *bool
	}{
		{"rain", &toggles.Rain},
		{"home_fatigue", &toggles.HomeFatigue},
		{"home_injury", &toggles.HomeInjury},
		{"away_fatigue", &toggles.AwayFatigue},
		{"away_injury", &toggles.AwayInjury},
	}

	for _, p := range params {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return analysis.Toggles{}, fmt.Errorf("%s must be a boolean", p.name)
		}
		*p.dest = v
	}
	return toggles, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
