package handler

import (
	"encoding/json"
	"net/http"

	"memorymatch/internal/api/request"
	"memorymatch/internal/api/response"
	"memorymatch/internal/model"
	"memorymatch/internal/services/progress"
)

// ProgressHandler handles game-progress endpoints
type ProgressHandler struct {
	progressService *progress.Service
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *progress.Service) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// GetProgress handles GET /api/v1/game-progress/get_progress.
// Missing player_id or game_type is a caller error, not a not-found.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	gameType := r.URL.Query().Get("game_type")

	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if gameType == "" {
		WriteError(w, NewInvalidRequestError("game_type is required"))
		return
	}

	p, err := h.progressService.Get(r.Context(), model.PlayerID(playerID), model.GameType(gameType))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(p))
}

// SaveProgress handles POST /api/v1/game-progress/save_progress
func (h *ProgressHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req request.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.GameType == "" {
		WriteError(w, NewInvalidRequestError("game_type is required"))
		return
	}

	upd := model.ProgressUpdate{
		CurrentLevel: req.CurrentLevel,
		Score:        req.Score,
		CardImages:   req.CardImages,
		FlippedCards: req.FlippedCards,
		MatchedCards: req.MatchedCards,
	}

	p, err := h.progressService.Save(r.Context(), model.PlayerID(req.PlayerID), model.GameType(req.GameType), upd)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(p))
}
