package model

import "errors"

// Common errors used across the application
var (
	// Setup errors
	ErrInvalidBoardSize   = errors.New("unsupported board size")
	ErrInvalidPlayer      = errors.New("invalid player index")
	ErrInvalidPlayerNames = errors.New("two non-empty player names are required")
	ErrUnknownCatalog     = errors.New("unknown patch catalog")

	// Move errors
	ErrGameOver            = errors.New("game is over")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrInvalidMarketSlot   = errors.New("no patch in that market slot")
	ErrInsufficientButtons = errors.New("not enough buttons")
	ErrInvalidPlacement    = errors.New("patch does not fit at that position")
	ErrInvalidRotation     = errors.New("rotation must be 0-3")
	ErrLeatherPending      = errors.New("a leather patch must be placed first")
	ErrNoLeatherPending    = errors.New("no leather patch is waiting to be placed")
	ErrLeatherActive       = errors.New("the collected leather patch has not been placed")

	// Match errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrHistoryNotFound = errors.New("history not found")

	// History errors
	ErrReplayDiverged            = errors.New("replay diverged from recorded history")
	ErrUnsupportedHistoryVersion = errors.New("unsupported history version")
	ErrMalformedHistory          = errors.New("malformed history")
)
