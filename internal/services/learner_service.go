package services

import (
	"context"
	"strings"

	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

// LearnerService handles learner account business logic
type LearnerService interface {
	CreateLearner(ctx context.Context, username string) (*models.Learner, error)
	GetLearner(ctx context.Context, id int64) (*models.Learner, error)
	ListLearners(ctx context.Context) ([]models.Learner, error)
	DeleteLearner(ctx context.Context, id int64) error
}

type learnerService struct {
	learners repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learners repository.LearnerRepository) LearnerService {
	return &learnerService{learners: learners}
}

func (s *learnerService) CreateLearner(ctx context.Context, username string) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	learner, err := s.learners.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("learner ready: id=%d, username=%s", learner.ID, learner.Username)
	return learner, nil
}

func (s *learnerService) GetLearner(ctx context.Context, id int64) (*models.Learner, error) {
	learner, err := s.learners.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", id)
	}
	return learner, nil
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	learners, err := s.learners.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list learners: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return learners, nil
}

func (s *learnerService) DeleteLearner(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	learner, err := s.learners.Get(ctx, id)
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return errors.NewInternalError(err)
	}
	if learner == nil {
		return errors.NewNotFoundError("learner", id)
	}

	if err := s.learners.Delete(ctx, id); err != nil {
		log.Error("failed to delete learner: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("learner deleted: id=%d", id)
	return nil
}
