package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tomas/studydeck/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DeckStats(ctx context.Context, learnerID, deckID int64) (*models.DeckStat, error) {
	args := m.Called(ctx, learnerID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeckStat), args.Error(1)
}

func (m *MockStatsRepository) LevelStats(ctx context.Context, learnerID, deckID int64) ([]models.LevelStat, error) {
	args := m.Called(ctx, learnerID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelStat), args.Error(1)
}

func (m *MockStatsRepository) ResponseTimeStats(ctx context.Context, learnerID int64) (*models.ResponseTimeStat, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResponseTimeStat), args.Error(1)
}
