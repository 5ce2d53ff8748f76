package repository

import (
	"context"
	"time"

	"github.com/tomas/studydeck/internal/models"
)

// LearnerRepository handles learner account data access
type LearnerRepository interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	Upsert(ctx context.Context, username string) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Delete(ctx context.Context, id int64) error
}

// DeckRepository handles deck and enrollment data access
type DeckRepository interface {
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Enroll(ctx context.Context, learnerID, deckID int64) error
	EnrolledDecks(ctx context.Context, learnerID int64) ([]models.Deck, error)
	IsEnrolled(ctx context.Context, learnerID, deckID int64) (bool, error)
}

// ItemRepository handles study item data access
type ItemRepository interface {
	Get(ctx context.Context, id int64) (*models.Item, error)
	Insert(ctx context.Context, item models.Item) (int64, error)
	InsertBatch(ctx context.Context, items []models.Item) ([]int64, error)
	List(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	Count(ctx context.Context, deckID int64) (int, error)
}

// ProgressRepository is the progress store: one record per learner and item.
// Save is last-write-wins; the scheduler assumes a single authoritative
// record per call and concurrent sessions are resolved here, not there.
type ProgressRepository interface {
	Get(ctx context.Context, learnerID, itemID int64) (*models.ProgressRecord, error)
	Save(ctx context.Context, rec models.ProgressRecord) (int64, error)
	ForDeck(ctx context.Context, learnerID, deckID int64) ([]models.ProgressRecord, error)
	CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error)
	LearnersWithDue(ctx context.Context, now time.Time) ([]models.DueSummary, error)
}

// ReviewRepository handles the per-attempt history log
type ReviewRepository interface {
	Insert(ctx context.Context, rev models.ReviewRecord) (int64, error)
	ListRecent(ctx context.Context, learnerID int64, limit int) ([]models.ReviewRecord, error)
}

// StatsRepository handles aggregate statistics data access
type StatsRepository interface {
	DeckStats(ctx context.Context, learnerID, deckID int64) (*models.DeckStat, error)
	LevelStats(ctx context.Context, learnerID, deckID int64) ([]models.LevelStat, error)
	ResponseTimeStats(ctx context.Context, learnerID int64) (*models.ResponseTimeStat, error)
}
