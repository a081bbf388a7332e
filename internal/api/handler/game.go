package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"memorymatch/internal/api/request"
	"memorymatch/internal/api/response"
	"memorymatch/internal/model"
	"memorymatch/internal/services/score"
	"memorymatch/internal/storage"
)

// GameHandler handles completed-game endpoints
type GameHandler struct {
	scoreService *score.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(scoreService *score.Service) *GameHandler {
	return &GameHandler{
		scoreService: scoreService,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.RecordGameRequest
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
	if req.Score == nil {
		WriteError(w, NewInvalidRequestError("score is required"))
		return
	}

	game, err := h.scoreService.Record(r.Context(), model.PlayerID(req.PlayerID), model.GameType(req.GameType), *req.Score, req.GameName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// List handles GET /api/v1/games with optional player_id and game_type
// query filters
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := storage.GameFilter{
		PlayerID: model.PlayerID(r.URL.Query().Get("player_id")),
		GameType: model.GameType(r.URL.Query().Get("game_type")),
	}

	games, err := h.scoreService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModels(games))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	game, err := h.scoreService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.scoreService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
