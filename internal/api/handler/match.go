package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/patchworkgame-go/internal/api/request"
	"github.com/mcoot/patchworkgame-go/internal/api/response"
	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/services/game"
)

// DefaultBoardSize is used when a create request names no size
const DefaultBoardSize = 9

// MatchHandler handles match endpoints
type MatchHandler struct {
	gameController *game.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(gameController *game.Controller) *MatchHandler {
	return &MatchHandler{gameController: gameController}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if len(req.PlayerNames) != 2 {
		WriteError(w, model.ErrInvalidPlayerNames)
		return
	}
	if req.BoardSize == 0 {
		req.BoardSize = DefaultBoardSize
	}

	match, err := h.gameController.CreateMatch(r.Context(), game.CreateMatchParams{
		PlayerNames:      [2]string{req.PlayerNames[0], req.PlayerNames[1]},
		FirstPlayerIndex: req.FirstPlayer,
		BoardSize:        req.BoardSize,
		Seed:             req.Seed,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.MatchFromModel(match))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	match, err := h.gameController.GetMatch(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, response.MatchFromModel(match))
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteMatch(r.Context(), matchID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Buy handles POST /api/v1/matches/{id}/buy
func (h *MatchHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req request.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Player == nil {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}

	match, result, err := h.gameController.BuyPatch(r.Context(), matchID(r), *req.Player, req.MarketIndex, req.Placement())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.TurnResponse{
		Match: response.MatchFromModel(match),
		Turn:  response.TurnFromResult(result),
	})
}

// Skip handles POST /api/v1/matches/{id}/skip
func (h *MatchHandler) Skip(w http.ResponseWriter, r *http.Request) {
	var req request.SkipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Player == nil {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}

	match, result, err := h.gameController.Skip(r.Context(), matchID(r), *req.Player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.TurnResponse{
		Match: response.MatchFromModel(match),
		Turn:  response.TurnFromResult(result),
	})
}

// Leather handles POST /api/v1/matches/{id}/leather
func (h *MatchHandler) Leather(w http.ResponseWriter, r *http.Request) {
	var req request.LeatherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Player == nil {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}

	match, result, err := h.gameController.PlaceLeatherPatch(r.Context(), matchID(r), *req.Player, req.Placement())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.LeatherResponse{
		Match:   response.MatchFromModel(match),
		Leather: response.LeatherFromResult(result),
	})
}

// History handles GET /api/v1/matches/{id}/history
func (h *MatchHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.gameController.GetHistory(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, history)
}

// Stats handles GET /api/v1/matches/{id}/stats
func (h *MatchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.gameController.GetStats(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.OK(w, summary)
}

// Catalog handles GET /api/v1/catalog
func (h *MatchHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	c := h.gameController.Catalog()
	response.OK(w, response.Catalog{
		Name:    c.Name(),
		Patches: response.PatchesFromModel(c.Patches()),
	})
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["id"])
}
