package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/patchworkgame-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newMatch(id model.MatchID) *model.Match {
	now := time.Now()
	return &model.Match{
		ID:        id,
		State:     &model.GameState{BoardSize: 9, TimeTrackLength: 53},
		History:   &model.GameHistory{Version: model.HistoryVersion, BoardSize: 9, Seed: 42},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatch() {
	match := newMatch("match-1")

	err := s.storage.SaveMatch(s.ctx, match)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(uint32(42), retrieved.History.Seed)
}

func (s *StorageSuite) TestMatchesAreCopied() {
	match := newMatch("match-1")
	s.Require().NoError(s.storage.SaveMatch(s.ctx, match))

	// Changes after saving, or to a loaded match, do not reach the store
	match.State.MarketPosition = 5
	first, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(0, first.State.MarketPosition)

	first.History.Seed = 99
	second, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(uint32(42), second.History.Seed)
	s.NotSame(first, second)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestSaveMatchOverwrites() {
	match := newMatch("match-1")
	_ = s.storage.SaveMatch(s.ctx, match)

	updated := newMatch("match-1")
	updated.ReplayID = "replay-1"
	_ = s.storage.SaveMatch(s.ctx, updated)

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal("replay-1", retrieved.ReplayID)
}

func (s *StorageSuite) TestDeleteMatch() {
	_ = s.storage.SaveMatch(s.ctx, newMatch("match-1"))

	err := s.storage.DeleteMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "match-1")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestMatchExists() {
	exists, err := s.storage.MatchExists(s.ctx, "match-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveMatch(s.ctx, newMatch("match-1"))

	exists, err = s.storage.MatchExists(s.ctx, "match-1")
	s.Require().NoError(err)
	s.True(exists)
}

// History tests

func (s *StorageSuite) TestSaveAndGetHistory() {
	history := &model.GameHistory{Version: model.HistoryVersion, Seed: 7, BoardSize: 7, FinalScores: []int{3, -10}}

	err := s.storage.SaveHistory(s.ctx, "replay-1", history)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetHistory(s.ctx, "replay-1")
	s.Require().NoError(err)
	s.Equal(history, retrieved)
}

func (s *StorageSuite) TestGetHistoryNotFound() {
	_, err := s.storage.GetHistory(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrHistoryNotFound)
}

func (s *StorageSuite) TestListHistoriesSorted() {
	ids, err := s.storage.ListHistories(s.ctx)
	s.Require().NoError(err)
	s.Empty(ids)

	_ = s.storage.SaveHistory(s.ctx, "b", &model.GameHistory{})
	_ = s.storage.SaveHistory(s.ctx, "a", &model.GameHistory{})

	ids, err = s.storage.ListHistories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, ids)
}
