// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/arcade/internal/domain/types"
)

// maxBodyBytes bounds request bodies accepted by the POST endpoints.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScoreDependencies
	LeaderboardDependencies
	PlayerDependencies
	GamesDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoresHandler      *ScoresHandler
	leaderboardHandler *LeaderboardHandler
	playersHandler     *PlayersHandler
	gamesHandler       *GamesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scoresHandler:      NewScoresHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		gamesHandler:       NewGamesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandlePostScore, "scores"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/register", MetricsMiddleware(s.playersHandler.HandleRegister, "register"))
	mux.HandleFunc("/login", MetricsMiddleware(s.playersHandler.HandleLogin, "login"))
	mux.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandleGetGames, "games"))
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		msg = apiErr.Message()
	case err != nil:
		msg = err.Error()
	}
	writeJSON(w, status, failureResponse{Success: false, Message: msg})
}

// writeServiceError maps a service failure to a status code by kind.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, types.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, WrapKind(op, ErrUnauthorized, err))
	case errors.Is(err, types.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, NewKind(op, ErrInternal))
	}
}

// decodeBody reads a single JSON object from r into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
