package redis

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/mcoot/patchworkgame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, matchKey(match.ID), data, s.cfg.MatchTTL).Err()
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	return s.client.Del(ctx, matchKey(id)).Err()
}

func (s *Storage) MatchExists(ctx context.Context, id model.MatchID) (bool, error) {
	exists, err := s.client.Exists(ctx, matchKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// History operations

func (s *Storage) SaveHistory(ctx context.Context, replayID string, history *model.GameHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, historyKey(replayID), data, s.cfg.HistoryTTL)
	pipe.SAdd(ctx, historiesIndexKey(), replayID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHistory(ctx context.Context, replayID string) (*model.GameHistory, error) {
	data, err := s.client.Get(ctx, historyKey(replayID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHistoryNotFound
		}
		return nil, err
	}

	var history model.GameHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// ListHistories returns archived replay IDs in sorted order. IDs whose
// history has expired are pruned from the index.
func (s *Storage) ListHistories(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, historiesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	var stale []interface{}
	for _, id := range members {
		exists, err := s.client.Exists(ctx, historyKey(id)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			stale = append(stale, id)
			continue
		}
		ids = append(ids, id)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, historiesIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}

	slices.Sort(ids)
	return ids, nil
}
