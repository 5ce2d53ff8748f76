package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
	"github.com/tomas/studydeck/internal/repository/sqlite"
	"github.com/tomas/studydeck/internal/testutil"
)

type ItemRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	repo   repository.ItemRepository
	deckID int64
}

func (s *ItemRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewItemRepository(s.db)

	err := s.db.QueryRowContext(context.Background(),
		`INSERT INTO decks (title) VALUES ('test deck') RETURNING id`).Scan(&s.deckID)
	s.Require().NoError(err)
}

func (s *ItemRepositorySuite) TestInsertBatch() {
	ctx := context.Background()

	items := []models.Item{
		{DeckID: s.deckID, Kind: models.KindFlashcard, Prompt: "hola", Answer: "hello"},
		{DeckID: s.deckID, Kind: models.KindFlashcard, Prompt: "adios", Answer: "goodbye"},
		{DeckID: s.deckID, Kind: models.KindQuestion, Prompt: "2+2?", Answer: "4"},
	}

	ids, err := s.repo.InsertBatch(ctx, items)
	s.Require().NoError(err)
	s.Require().Len(ids, 3)

	count, err := s.repo.Count(ctx, s.deckID)
	s.Require().NoError(err)
	s.Assert().Equal(3, count)
}

func (s *ItemRepositorySuite) TestListFiltersByKind() {
	ctx := context.Background()

	_, err := s.repo.InsertBatch(ctx, []models.Item{
		{DeckID: s.deckID, Kind: models.KindFlashcard, Prompt: "a", Answer: "b"},
		{DeckID: s.deckID, Kind: models.KindQuestion, Prompt: "c", Answer: "d"},
	})
	s.Require().NoError(err)

	questions, err := s.repo.List(ctx, models.ItemFilter{DeckID: s.deckID, Kind: models.KindQuestion})
	s.Require().NoError(err)
	s.Require().Len(questions, 1)
	s.Assert().Equal("c", questions[0].Prompt)
}

func (s *ItemRepositorySuite) TestListPagination() {
	ctx := context.Background()

	var items []models.Item
	for i := 0; i < 5; i++ {
		items = append(items, models.Item{
			DeckID: s.deckID, Kind: models.KindFlashcard,
			Prompt: "p", Answer: "a",
		})
	}
	_, err := s.repo.InsertBatch(ctx, items)
	s.Require().NoError(err)

	page, err := s.repo.List(ctx, models.ItemFilter{DeckID: s.deckID, Limit: 2, Offset: 4})
	s.Require().NoError(err)
	s.Assert().Len(page, 1)
}

func (s *ItemRepositorySuite) TestGetMissingReturnsNil() {
	item, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(item)
}

func TestItemRepositorySuite(t *testing.T) {
	suite.Run(t, new(ItemRepositorySuite))
}
