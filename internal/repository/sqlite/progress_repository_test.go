package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
	"github.com/tomas/studydeck/internal/repository/sqlite"
	"github.com/tomas/studydeck/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) setupLearnerAndItem(username string) (int64, int64) {
	ctx := context.Background()

	var learnerID int64
	err := s.db.QueryRowContext(ctx, `INSERT INTO learners (username) VALUES (?) RETURNING id`, username).Scan(&learnerID)
	s.Require().NoError(err)

	var deckID int64
	err = s.db.QueryRowContext(ctx, `INSERT INTO decks (title) VALUES (?) RETURNING id`, "deck for "+username).Scan(&deckID)
	s.Require().NoError(err)

	var itemID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO items (deck_id, kind, prompt, answer) VALUES (?, ?, ?, ?) RETURNING id
	`, deckID, "flashcard", "question?", "answer").Scan(&itemID)
	s.Require().NoError(err)

	return learnerID, itemID
}

func (s *ProgressRepositorySuite) TestSaveInsertsThenUpdates() {
	ctx := context.Background()
	learnerID, itemID := s.setupLearnerAndItem("alice")

	rec := models.ProgressRecord{
		LearnerID:    learnerID,
		ItemID:       itemID,
		Level:        1,
		EaseFactor:   2.5,
		IntervalDays: 1,
		Repetitions:  1,
		Difficulty:   0.5,
		CorrectCount: 1,
		NextReviewAt: time.Now().Add(24 * time.Hour),
	}

	id, err := s.repo.Save(ctx, rec)
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	// Saving again for the same pair must update the same row.
	rec.Level = 2
	rec.EaseFactor = 2.6
	rec.IntervalDays = 3
	rec.Repetitions = 2
	rec.CorrectCount = 2
	rec.LastAttemptAt = time.Now()

	id2, err := s.repo.Save(ctx, rec)
	s.Require().NoError(err)
	s.Assert().Equal(id, id2)

	got, err := s.repo.Get(ctx, learnerID, itemID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(2, got.Level)
	s.Assert().Equal(2.6, got.EaseFactor)
	s.Assert().Equal(3, got.IntervalDays)
	s.Assert().Equal(2, got.CorrectCount)
	s.Assert().False(got.LastAttemptAt.IsZero())
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), 999, 999)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProgressRepositorySuite) TestForDeck() {
	ctx := context.Background()
	learnerID, itemID := s.setupLearnerAndItem("bob")

	var deckID int64
	err := s.db.QueryRowContext(ctx, `SELECT deck_id FROM items WHERE id = ?`, itemID).Scan(&deckID)
	s.Require().NoError(err)

	var secondItemID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO items (deck_id, kind, prompt, answer) VALUES (?, ?, ?, ?) RETURNING id
	`, deckID, "question", "another?", "yes").Scan(&secondItemID)
	s.Require().NoError(err)

	for _, it := range []int64{itemID, secondItemID} {
		_, err := s.repo.Save(ctx, models.ProgressRecord{
			LearnerID:    learnerID,
			ItemID:       it,
			EaseFactor:   2.5,
			Difficulty:   0.5,
			NextReviewAt: time.Now(),
		})
		s.Require().NoError(err)
	}

	records, err := s.repo.ForDeck(ctx, learnerID, deckID)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Assert().Equal(itemID, records[0].ItemID)
	s.Assert().Equal(secondItemID, records[1].ItemID)
}

func (s *ProgressRepositorySuite) TestCountDue() {
	ctx := context.Background()
	learnerID, itemID := s.setupLearnerAndItem("carol")

	now := time.Now()

	// One due record and one scheduled for tomorrow.
	_, err := s.repo.Save(ctx, models.ProgressRecord{
		LearnerID: learnerID, ItemID: itemID,
		EaseFactor: 2.5, Difficulty: 0.5,
		NextReviewAt: now.Add(-time.Hour),
	})
	s.Require().NoError(err)

	var deckID int64
	err = s.db.QueryRowContext(ctx, `SELECT deck_id FROM items WHERE id = ?`, itemID).Scan(&deckID)
	s.Require().NoError(err)

	var futureItemID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO items (deck_id, kind, prompt, answer) VALUES (?, 'flashcard', 'later?', 'later') RETURNING id
	`, deckID).Scan(&futureItemID)
	s.Require().NoError(err)

	_, err = s.repo.Save(ctx, models.ProgressRecord{
		LearnerID: learnerID, ItemID: futureItemID,
		EaseFactor: 2.5, Difficulty: 0.5,
		NextReviewAt: now.Add(24 * time.Hour),
	})
	s.Require().NoError(err)

	count, err := s.repo.CountDue(ctx, learnerID, now)
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *ProgressRepositorySuite) TestLearnersWithDue() {
	ctx := context.Background()
	now := time.Now()

	dueLearner, dueItem := s.setupLearnerAndItem("due_user")
	_, err := s.repo.Save(ctx, models.ProgressRecord{
		LearnerID: dueLearner, ItemID: dueItem,
		EaseFactor: 2.5, Difficulty: 0.5,
		NextReviewAt: now.Add(-time.Minute),
	})
	s.Require().NoError(err)

	idleLearner, idleItem := s.setupLearnerAndItem("idle_user")
	_, err = s.repo.Save(ctx, models.ProgressRecord{
		LearnerID: idleLearner, ItemID: idleItem,
		EaseFactor: 2.5, Difficulty: 0.5,
		NextReviewAt: now.Add(48 * time.Hour),
	})
	s.Require().NoError(err)

	summaries, err := s.repo.LearnersWithDue(ctx, now)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Assert().Equal(dueLearner, summaries[0].LearnerID)
	s.Assert().Equal("due_user", summaries[0].Username)
	s.Assert().Equal(1, summaries[0].DueCount)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
