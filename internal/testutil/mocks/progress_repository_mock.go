package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tomas/studydeck/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, learnerID, itemID int64) (*models.ProgressRecord, error) {
	args := m.Called(ctx, learnerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, rec models.ProgressRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) ForDeck(ctx context.Context, learnerID, deckID int64) ([]models.ProgressRecord, error) {
	args := m.Called(ctx, learnerID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error) {
	args := m.Called(ctx, learnerID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) LearnersWithDue(ctx context.Context, now time.Time) ([]models.DueSummary, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueSummary), args.Error(1)
}
