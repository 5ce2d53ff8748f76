package services

import (
	"context"
	"sort"
	"time"

	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
	"github.com/tomas/studydeck/internal/scheduler"
)

// StatsService aggregates progress into learner-facing statistics
type StatsService interface {
	DeckStats(ctx context.Context, learnerID, deckID int64) (*models.DeckStat, error)
	LevelStats(ctx context.Context, learnerID, deckID int64) ([]models.LevelStat, error)
	DifficultyBreakdown(ctx context.Context, learnerID, deckID int64) ([]models.DifficultyStat, error)
	ForgetRisks(ctx context.Context, learnerID, deckID int64, limit int) ([]models.ForgetRisk, error)
	ResponseTimeStats(ctx context.Context, learnerID int64) (*models.ResponseTimeStat, error)
	DueCount(ctx context.Context, learnerID int64) (int, error)
}

type statsService struct {
	stats    repository.StatsRepository
	progress repository.ProgressRepository
	items    repository.ItemRepository
	params   scheduler.Params
}

// NewStatsService creates a new StatsService
func NewStatsService(stats repository.StatsRepository, progress repository.ProgressRepository, items repository.ItemRepository, params scheduler.Params) StatsService {
	return &statsService{stats: stats, progress: progress, items: items, params: params}
}

func (s *statsService) DeckStats(ctx context.Context, learnerID, deckID int64) (*models.DeckStat, error) {
	stat, err := s.stats.DeckStats(ctx, learnerID, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stat, nil
}

func (s *statsService) LevelStats(ctx context.Context, learnerID, deckID int64) ([]models.LevelStat, error) {
	stats, err := s.stats.LevelStats(ctx, learnerID, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get level stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

// DifficultyBreakdown buckets a deck's progress records with the same
// thresholds the rest of the system labels with.
func (s *statsService) DifficultyBreakdown(ctx context.Context, learnerID, deckID int64) ([]models.DifficultyStat, error) {
	log := logger.FromContext(ctx)

	records, err := s.progress.ForDeck(ctx, learnerID, deckID)
	if err != nil {
		log.Error("failed to load deck progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	counts := map[scheduler.DifficultyLabel]int{}
	for _, rec := range records {
		counts[scheduler.Classify(rec.Difficulty)]++
	}

	out := make([]models.DifficultyStat, 0, 3)
	for _, label := range []scheduler.DifficultyLabel{scheduler.LabelEasy, scheduler.LabelMedium, scheduler.LabelHard} {
		out = append(out, models.DifficultyStat{Label: string(label), Count: counts[label]})
	}
	return out, nil
}

// ForgetRisks lists the deck items predicted to be forgotten soonest.
func (s *statsService) ForgetRisks(ctx context.Context, learnerID, deckID int64, limit int) ([]models.ForgetRisk, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 10
	}

	records, err := s.progress.ForDeck(ctx, learnerID, deckID)
	if err != nil {
		log.Error("failed to load deck progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	items, err := s.items.List(ctx, models.ItemFilter{DeckID: deckID})
	if err != nil {
		log.Error("failed to list deck items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	prompts := make(map[int64]string, len(items))
	for _, it := range items {
		prompts[it.ID] = it.Prompt
	}

	risks := make([]models.ForgetRisk, 0, len(records))
	for _, rec := range records {
		risks = append(risks, models.ForgetRisk{
			ItemID:       rec.ItemID,
			Prompt:       prompts[rec.ItemID],
			DaysToForget: s.params.PredictForgetDays(rec),
		})
	}
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].DaysToForget != risks[j].DaysToForget {
			return risks[i].DaysToForget < risks[j].DaysToForget
		}
		return risks[i].ItemID < risks[j].ItemID
	})
	if len(risks) > limit {
		risks = risks[:limit]
	}
	return risks, nil
}

func (s *statsService) ResponseTimeStats(ctx context.Context, learnerID int64) (*models.ResponseTimeStat, error) {
	stat, err := s.stats.ResponseTimeStats(ctx, learnerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get response time stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stat, nil
}

// DueCount reports how many items a learner has due right now.
func (s *statsService) DueCount(ctx context.Context, learnerID int64) (int, error) {
	count, err := s.progress.CountDue(ctx, learnerID, time.Now())
	if err != nil {
		logger.FromContext(ctx).Error("failed to count due items: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return count, nil
}
