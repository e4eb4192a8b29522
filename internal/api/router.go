package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/patchworkgame-go/internal/api/handler"
	"github.com/mcoot/patchworkgame-go/internal/api/middleware"
	"github.com/mcoot/patchworkgame-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = middleware.NotFound(cfg.Logger)
	r.MethodNotAllowedHandler = middleware.MethodNotAllowed(cfg.Logger)

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.GameController)
	replayHandler := handler.NewReplayHandler(cfg.GameController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Match routes
	matches := api.PathPrefix("/matches").Subrouter()
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Delete).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/buy", matchHandler.Buy).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/skip", matchHandler.Skip).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/leather", matchHandler.Leather).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/history", matchHandler.History).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/stats", matchHandler.Stats).Methods(http.MethodGet)

	// Replay routes; the literal stats route is registered before {id}
	replays := api.PathPrefix("/replays").Subrouter()
	replays.HandleFunc("", replayHandler.List).Methods(http.MethodGet)
	replays.HandleFunc("/stats", replayHandler.UploadStats).Methods(http.MethodPost)
	replays.HandleFunc("/{id}", replayHandler.Get).Methods(http.MethodGet)
	replays.HandleFunc("/{id}/stats", replayHandler.Stats).Methods(http.MethodGet)

	api.HandleFunc("/catalog", matchHandler.Catalog).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
