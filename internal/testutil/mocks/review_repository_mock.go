package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tomas/studydeck/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Insert(ctx context.Context, rev models.ReviewRecord) (int64, error) {
	args := m.Called(ctx, rev)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) ListRecent(ctx context.Context, learnerID int64, limit int) ([]models.ReviewRecord, error) {
	args := m.Called(ctx, learnerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewRecord), args.Error(1)
}
