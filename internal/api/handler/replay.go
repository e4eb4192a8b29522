package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/services/game"
	"github.com/mcoot/patchworkgame-go/internal/services/history"
)

// MaxHistoryBytes caps the size of an uploaded history
const MaxHistoryBytes = 1 << 20

// ReplayHandler serves archived histories and stats for uploaded ones
type ReplayHandler struct {
	gameController *game.Controller
}

// NewReplayHandler creates a new replay handler
func NewReplayHandler(gameController *game.Controller) *ReplayHandler {
	return &ReplayHandler{gameController: gameController}
}

// List handles GET /api/v1/replays
func (h *ReplayHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ListReplays(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.ReplayList{Replays: ids})
}

// Get handles GET /api/v1/replays/{id}
func (h *ReplayHandler) Get(w http.ResponseWriter, r *http.Request) {
	replay, err := h.gameController.GetReplay(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, replay)
}

// Stats handles GET /api/v1/replays/{id}/stats
func (h *ReplayHandler) Stats(w http.ResponseWriter, r *http.Request) {
	replay, err := h.gameController.GetReplay(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}
	summary, err := h.gameController.ComputeStats(replay)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, summary)
}

// UploadStats handles POST /api/v1/replays/stats. The body is a serialized
// history; it is replayed but not stored.
func (h *ReplayHandler) UploadStats(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxHistoryBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, NewInvalidRequestError("History is too large"))
			return
		}
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	uploaded, err := history.Decode(data)
	if err != nil {
		WriteError(w, err)
		return
	}

	summary, err := h.gameController.ComputeStats(uploaded)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, summary)
}
