package api

import (
	"context"
	"net/http"

	"github.com/okian/arcade/internal/domain/types"
)

// GamesDependencies exposes the game catalog.
type GamesDependencies interface {
	Games(ctx context.Context) ([]types.Game, bool, error)
}

// GamesHandler handles catalog requests.
type GamesHandler struct {
	deps GamesDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GamesDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

type gamesResponse struct {
	Success bool         `json:"success"`
	Games   []types.Game `json:"games"`
	Strict  bool         `json:"strict"`
}

// HandleGetGames handles GET /games requests.
func (h *GamesHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_games"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	games, strict, err := h.deps.Games(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if games == nil {
		games = []types.Game{}
	}
	writeJSON(w, http.StatusOK, gamesResponse{Success: true, Games: games, Strict: strict})
}
