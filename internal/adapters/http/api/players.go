package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/arcade/internal/domain/types"
)

// PlayerDependencies defines the interface for registration and login.
type PlayerDependencies interface {
	Register(ctx context.Context, name, email, phone string) (types.User, error)
	Login(ctx context.Context, email, playerID string) (types.User, error)
}

// PlayersHandler handles player registration and login.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	PlayerID string `json:"playerId"`
}

type userResponse struct {
	Success bool       `json:"success"`
	User    types.User `json:"user"`
}

var (
	errNameEmailRequired   = errors.New("name and email are required")
	errLoginFieldsRequired = errors.New("email and player id are required")
)

// HandleRegister handles POST /register requests.
func (h *PlayersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "api.register"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, errNameEmailRequired))
		return
	}

	u, err := h.deps.Register(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: u})
}

// HandleLogin handles POST /login requests.
func (h *PlayersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.PlayerID) == "" {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, errLoginFieldsRequired))
		return
	}

	u, err := h.deps.Login(r.Context(), req.Email, req.PlayerID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: u})
}
