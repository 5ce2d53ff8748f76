package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tomas/studydeck/internal/repository"
	"github.com/tomas/studydeck/internal/repository/sqlite"
	"github.com/tomas/studydeck/internal/testutil"
)

type LearnerRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.LearnerRepository
}

func (s *LearnerRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewLearnerRepository(s.db)
}

func (s *LearnerRepositorySuite) TestUpsertIsIdempotent() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "tomas")
	s.Require().NoError(err)
	s.Assert().Greater(first.ID, int64(0))
	s.Assert().Equal("tomas", first.Username)

	second, err := s.repo.Upsert(ctx, "tomas")
	s.Require().NoError(err)
	s.Assert().Equal(first.ID, second.ID)
}

func (s *LearnerRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), 12345)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *LearnerRepositorySuite) TestListOrdersByCreation() {
	ctx := context.Background()

	_, err := s.repo.Upsert(ctx, "first")
	s.Require().NoError(err)
	_, err = s.repo.Upsert(ctx, "second")
	s.Require().NoError(err)

	learners, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(learners, 2)
	s.Assert().Equal("first", learners[0].Username)
	s.Assert().Equal("second", learners[1].Username)
}

func (s *LearnerRepositorySuite) TestDeleteCascadesProgress() {
	ctx := context.Background()

	learner, err := s.repo.Upsert(ctx, "doomed")
	s.Require().NoError(err)

	var deckID int64
	err = s.db.QueryRowContext(ctx, `INSERT INTO decks (title) VALUES ('d') RETURNING id`).Scan(&deckID)
	s.Require().NoError(err)

	var itemID int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO items (deck_id, kind, prompt, answer) VALUES (?, 'flashcard', 'p', 'a') RETURNING id
	`, deckID).Scan(&itemID)
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (learner_id, item_id) VALUES (?, ?)
	`, learner.ID, itemID)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, learner.ID))

	got, err := s.repo.Get(ctx, learner.ID)
	s.Require().NoError(err)
	s.Assert().Nil(got)

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM progress WHERE learner_id = ?`, learner.ID).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func TestLearnerRepositorySuite(t *testing.T) {
	suite.Run(t, new(LearnerRepositorySuite))
}
