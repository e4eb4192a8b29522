package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/patchworkgame-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidBoardSize    = "INVALID_BOARD_SIZE"
	CodeInvalidPlayer       = "INVALID_PLAYER"
	CodeInvalidPlayerNames  = "INVALID_PLAYER_NAMES"
	CodeUnknownCatalog      = "UNKNOWN_CATALOG"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeGameOver            = "GAME_OVER"
	CodeInvalidMarketSlot   = "INVALID_MARKET_SLOT"
	CodeInsufficientButtons = "INSUFFICIENT_BUTTONS"
	CodeInvalidPlacement    = "INVALID_PLACEMENT"
	CodeInvalidRotation     = "INVALID_ROTATION"
	CodeLeatherPending      = "LEATHER_PENDING"
	CodeNoLeatherPending    = "NO_LEATHER_PENDING"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeReplayNotFound      = "REPLAY_NOT_FOUND"
	CodeReplayDiverged      = "REPLAY_DIVERGED"
	CodeUnsupportedHistory  = "UNSUPPORTED_HISTORY_VERSION"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeRouteNotFound       = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors. Replay divergence wraps the engine error that
	// caused it, so it is matched first.
	switch {
	case errors.Is(err, model.ErrReplayDiverged):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeReplayDiverged, err.Error()}}
	case errors.Is(err, model.ErrMalformedHistory):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Malformed history"}}
	case errors.Is(err, model.ErrUnsupportedHistoryVersion):
		return &httpError{http.StatusBadRequest, APIError{CodeUnsupportedHistory, "Unsupported history version"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrHistoryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeReplayNotFound, "Replay not found"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, "Board size must be 7, 9 or 11"}}
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Player must be 0 or 1"}}
	case errors.Is(err, model.ErrInvalidPlayerNames):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerNames, "Two non-empty player names are required"}}
	case errors.Is(err, model.ErrUnknownCatalog):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownCatalog, "Unknown patch catalog"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrInvalidMarketSlot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMarketSlot, "No patch in that market slot"}}
	case errors.Is(err, model.ErrInsufficientButtons):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientButtons, "Not enough buttons"}}
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusConflict, APIError{CodeInvalidPlacement, "Patch does not fit at that position"}}
	case errors.Is(err, model.ErrInvalidRotation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRotation, "Rotation must be 0-3"}}
	case errors.Is(err, model.ErrLeatherPending), errors.Is(err, model.ErrLeatherActive):
		return &httpError{http.StatusConflict, APIError{CodeLeatherPending, "A leather patch must be placed first"}}
	case errors.Is(err, model.ErrNoLeatherPending):
		return &httpError{http.StatusConflict, APIError{CodeNoLeatherPending, "No leather patch is waiting"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewRouteNotFoundError is returned for paths outside the API
func NewRouteNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeRouteNotFound, "No such endpoint"}}
}

// NewMethodNotAllowedError is returned for a known path with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}
