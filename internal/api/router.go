package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"memorymatch/internal/api/apierr"
	"memorymatch/internal/api/handler"
	"memorymatch/internal/middleware"
	"memorymatch/internal/services/player"
	"memorymatch/internal/services/progress"
	"memorymatch/internal/services/score"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	PlayerService   *player.Service
	ScoreService    *score.Service
	ProgressService *progress.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	gameHandler := handler.NewGameHandler(cfg.ScoreService)
	progressHandler := handler.NewProgressHandler(cfg.ProgressService)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes. check-name goes first so it is not captured as {id}.
	api.HandleFunc("/players/check-name/{name}", playerHandler.CheckName).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/players/{id}/stats", playerHandler.UpdateStats).Methods(http.MethodPatch)

	// Completed-game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	// Progress routes
	api.HandleFunc("/game-progress/get_progress", progressHandler.GetProgress).Methods(http.MethodGet)
	api.HandleFunc("/game-progress/save_progress", progressHandler.SaveProgress).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
