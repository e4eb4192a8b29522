package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Records
// are kept in their JSON encoding, the same as the Redis backend, so callers
// never share state with the store or with each other.
type Storage struct {
	mu sync.RWMutex

	matches   map[model.MatchID][]byte
	histories map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches:   make(map[model.MatchID][]byte),
		histories: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.ID] = data
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	data, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrMatchNotFound
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.matches[id]
	return ok, nil
}

// History operations

func (s *Storage) SaveHistory(ctx context.Context, replayID string, history *model.GameHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[replayID] = data
	return nil
}

func (s *Storage) GetHistory(ctx context.Context, replayID string) (*model.GameHistory, error) {
	s.mu.RLock()
	data, ok := s.histories[replayID]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrHistoryNotFound
	}

	var history model.GameHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (s *Storage) ListHistories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.histories))
	for id := range s.histories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
