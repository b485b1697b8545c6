package game

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/merev/ds-darts-engine/internal/checkout"
	"github.com/merev/ds-darts-engine/internal/match"
)

type Handler struct {
	svc     *Service
	timeout time.Duration
}

func NewHandler(svc *Service, timeout time.Duration) *Handler {
	return &Handler{svc: svc, timeout: timeout}
}

// POST /api/games
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := h.svc.CreateGame(ctx, req)
	if err != nil {
		writeError(w, "failed to create game", err)
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

// GET /api/games?phase=playing
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	games, err := h.svc.ListGames(ctx, r.URL.Query().Get("phase"))
	if err != nil {
		writeError(w, "failed to list games", err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// GET /api/games/{id}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, err := h.svc.GetGame(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "failed to load game", err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// DELETE /api/games/{id}
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.DeleteGame(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, "failed to delete game", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/games/{id}/start
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := h.svc.StartGame(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, "failed to start game", err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// POST /api/games/{id}/turns
func (h *Handler) PostTurn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := h.svc.SubmitTurn(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, "failed to register turn", err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// POST /api/games/{id}/undo
func (h *Handler) UndoLastTurn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "failed to undo turn", h.svc.Undo)
}

// POST /api/games/{id}/next-leg
func (h *Handler) NextLeg(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "failed to start next leg", h.svc.NextLeg)
}

// POST /api/games/{id}/rematch
func (h *Handler) Rematch(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "failed to start rematch", h.svc.Rematch)
}

// POST /api/games/{id}/new
func (h *Handler) NewGame(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "failed to reset game", h.svc.NewGame)
}

// GET /api/games/{id}/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, err := h.svc.Stats(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "failed to compute stats", err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// GET /api/checkout/{score}?mode=double
func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(chi.URLParam(r, "score"))
	if err != nil {
		http.Error(w, "score must be an integer", http.StatusBadRequest)
		return
	}

	mode := checkout.Mode(r.URL.Query().Get("mode"))
	switch mode {
	case "":
		mode = checkout.Double
	case checkout.Simple, checkout.Double:
	default:
		http.Error(w, "mode must be simple or double", http.StatusBadRequest)
		return
	}

	v := CheckoutView{Score: score, Mode: string(mode)}
	if route, ok := checkout.Suggest(score, mode); ok {
		v.Found = true
		v.Route = route.String()
		v.Darts = route
	}

	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, msg string, op func(context.Context, string) (GameView, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, err := op(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, msg, err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, match.ErrInvalidPhase):
		status = http.StatusConflict
	case errors.Is(err, match.ErrInvalidConfig), errors.Is(err, ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	http.Error(w, msg+": "+err.Error(), status)
}

// Helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
