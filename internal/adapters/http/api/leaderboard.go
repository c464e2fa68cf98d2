package api

import (
	"context"
	"net/http"

	"github.com/okian/arcade/internal/domain/types"
)

// LeaderboardDependencies defines the interface for leaderboard operations
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, game string) ([]types.Row, error)
}

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

type leaderboardResponse struct {
	Success     bool        `json:"success"`
	Leaderboard []types.Row `json:"leaderboard"`
}

// HandleGetLeaderboard handles GET /leaderboard?game=NAME requests. Without
// a game the board spans every game.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, err := h.deps.Leaderboard(r.Context(), r.URL.Query().Get("game"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if rows == nil {
		rows = []types.Row{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Success: true, Leaderboard: rows})
}
