package storage

import (
	"context"

	"github.com/mcoot/patchworkgame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	MatchExists(ctx context.Context, id model.MatchID) (bool, error)

	// Archived history operations, keyed by replay ID
	SaveHistory(ctx context.Context, replayID string, history *model.GameHistory) error
	GetHistory(ctx context.Context, replayID string) (*model.GameHistory, error)
	ListHistories(ctx context.Context) ([]string, error)
}
