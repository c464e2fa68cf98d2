package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/arcade/internal/domain/types"
)

// ScoreDependencies defines the interface for score submission.
type ScoreDependencies interface {
	SubmitScore(ctx context.Context, sub types.Submission) (types.SubmitResult, error)
}

// ScoresHandler handles score submissions from game stations.
type ScoresHandler struct {
	deps ScoreDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoreDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// scoreRequest mirrors the OpenAPI schema for POST /scores. Pointers tell
// a missing field from a zero value.
type scoreRequest struct {
	UserID       *string  `json:"userId"`
	Game         *string  `json:"game"`
	Score        *float64 `json:"score"`
	SubmissionID string   `json:"submissionId"`
}

var errMissingFields = errors.New("missing required fields")

func (s scoreRequest) validate() error {
	if s.UserID == nil || s.Game == nil || s.Score == nil ||
		strings.TrimSpace(*s.UserID) == "" || strings.TrimSpace(*s.Game) == "" {
		return errMissingFields
	}
	return nil
}

type scoreResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// HandlePostScore handles POST /scores requests.
func (h *ScoresHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.SubmitScore(r.Context(), types.Submission{
		PlayerID:     *req.UserID,
		Game:         *req.Game,
		Score:        *req.Score,
		SubmissionID: req.SubmissionID,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Success: true, ID: res.ID, Duplicate: res.Duplicate})
}
