package handler

import (
	"net/http"

	"github.com/mcoot/patchworkgame-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeInvalidBoardSize    = apierr.CodeInvalidBoardSize
	CodeInvalidPlayer       = apierr.CodeInvalidPlayer
	CodeInvalidPlayerNames  = apierr.CodeInvalidPlayerNames
	CodeUnknownCatalog      = apierr.CodeUnknownCatalog
	CodeNotYourTurn         = apierr.CodeNotYourTurn
	CodeGameOver            = apierr.CodeGameOver
	CodeInvalidMarketSlot   = apierr.CodeInvalidMarketSlot
	CodeInsufficientButtons = apierr.CodeInsufficientButtons
	CodeInvalidPlacement    = apierr.CodeInvalidPlacement
	CodeInvalidRotation     = apierr.CodeInvalidRotation
	CodeLeatherPending      = apierr.CodeLeatherPending
	CodeNoLeatherPending    = apierr.CodeNoLeatherPending
	CodeMatchNotFound       = apierr.CodeMatchNotFound
	CodeReplayNotFound      = apierr.CodeReplayNotFound
	CodeReplayDiverged      = apierr.CodeReplayDiverged
	CodeUnsupportedHistory  = apierr.CodeUnsupportedHistory
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
