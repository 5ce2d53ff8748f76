package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/scheduler"
	"github.com/tomas/studydeck/internal/services"
	"github.com/tomas/studydeck/internal/testutil/mocks"
)

type studyFixture struct {
	learners *mocks.MockLearnerRepository
	decks    *mocks.MockDeckRepository
	items    *mocks.MockItemRepository
	progress *mocks.MockProgressRepository
	reviews  *mocks.MockReviewRepository
	svc      services.StudyService
}

func newStudyFixture(sessionSize int) *studyFixture {
	f := &studyFixture{
		learners: new(mocks.MockLearnerRepository),
		decks:    new(mocks.MockDeckRepository),
		items:    new(mocks.MockItemRepository),
		progress: new(mocks.MockProgressRepository),
		reviews:  new(mocks.MockReviewRepository),
	}
	f.svc = services.NewStudyService(f.learners, f.decks, f.items, f.progress, f.reviews,
		scheduler.DefaultParams(), sessionSize)
	return f
}

// expectStart wires the happy path for StartSession over the given items.
func (f *studyFixture) expectStart(learnerID, deckID int64, items []models.Item) {
	f.learners.On("Get", mock.Anything, learnerID).Return(&models.Learner{ID: learnerID, Username: "tester"}, nil)
	f.decks.On("Get", mock.Anything, deckID).Return(&models.Deck{ID: deckID, Title: "deck"}, nil)
	f.decks.On("IsEnrolled", mock.Anything, learnerID, deckID).Return(true, nil)
	f.items.On("List", mock.Anything, models.ItemFilter{DeckID: deckID}).Return(items, nil)
	f.progress.On("ForDeck", mock.Anything, learnerID, deckID).Return([]models.ProgressRecord(nil), nil)
}

func twoItems(deckID int64) []models.Item {
	return []models.Item{
		{ID: 1, DeckID: deckID, Kind: models.KindFlashcard, Prompt: "hola", Answer: "hello"},
		{ID: 2, DeckID: deckID, Kind: models.KindFlashcard, Prompt: "adios", Answer: "goodbye"},
	}
}

func TestStartSession_BuildsQueueFromDeck(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)
	f.expectStart(10, 5, twoItems(5))

	view, err := f.svc.StartSession(ctx, 10, 5)
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, int64(10), view.LearnerID)
	assert.Equal(t, int64(5), view.DeckID)
	assert.Equal(t, 2, view.Remaining)
}

func TestStartSession_TruncatesToSessionSize(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(3)

	var items []models.Item
	for i := 1; i <= 10; i++ {
		items = append(items, models.Item{ID: int64(i), DeckID: 5, Kind: models.KindFlashcard, Prompt: fmt.Sprintf("p%d", i)})
	}
	f.expectStart(10, 5, items)

	view, err := f.svc.StartSession(ctx, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Remaining)
}

func TestStartSession_RequiresEnrollment(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)

	f.learners.On("Get", mock.Anything, int64(10)).Return(&models.Learner{ID: 10}, nil)
	f.decks.On("Get", mock.Anything, int64(5)).Return(&models.Deck{ID: 5}, nil)
	f.decks.On("IsEnrolled", mock.Anything, int64(10), int64(5)).Return(false, nil)

	_, err := f.svc.StartSession(ctx, 10, 5)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestStartSession_UnknownLearner(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)

	f.learners.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	_, err := f.svc.StartSession(ctx, 99, 5)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestSession_FullStudyFlow(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)
	f.expectStart(10, 5, twoItems(5))
	f.progress.On("Save", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.reviews.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)

	view, err := f.svc.StartSession(ctx, 10, 5)
	require.NoError(t, err)

	// Both items are untrained, so they come out in item id order.
	current, err := f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.Item.ID)

	// Asking again before answering re-presents the same item.
	again, err := f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.Item.ID)

	result, err := f.svc.SubmitAnswer(ctx, view.ID, 1, true, 2500)
	require.NoError(t, err)
	assert.False(t, result.Requeued)
	assert.Equal(t, 1, result.Progress.Level)
	assert.Equal(t, 1, result.Progress.CorrectCount)

	current, err = f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.Item.ID)

	// A miss puts the item back into the queue.
	result, err = f.svc.SubmitAnswer(ctx, view.ID, 2, false, 8000)
	require.NoError(t, err)
	assert.True(t, result.Requeued)
	assert.Equal(t, 0, result.Progress.Level)
	assert.Equal(t, 1, result.Progress.IncorrectCount)

	current, err = f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.Item.ID)

	_, err = f.svc.SubmitAnswer(ctx, view.ID, 2, true, 3000)
	require.NoError(t, err)

	done, err := f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)

	// The session is gone once drained.
	_, err = f.svc.NextItem(ctx, view.ID)
	require.Error(t, err)
}

func TestSubmitAnswer_PersistFailureKeepsSessionAlive(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)
	f.expectStart(10, 5, twoItems(5))
	f.progress.On("Save", mock.Anything, mock.Anything).Return(int64(0), fmt.Errorf("disk full"))
	f.reviews.On("Insert", mock.Anything, mock.Anything).Return(int64(0), fmt.Errorf("disk full"))

	view, err := f.svc.StartSession(ctx, 10, 5)
	require.NoError(t, err)

	current, err := f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)

	result, err := f.svc.SubmitAnswer(ctx, view.ID, current.Item.ID, true, 2000)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Progress.Level)

	// The session keeps serving the remaining items.
	next, err := f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)
	assert.False(t, next.Done)
}

func TestSubmitAnswer_RejectsMismatchedItem(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)
	f.expectStart(10, 5, twoItems(5))

	view, err := f.svc.StartSession(ctx, 10, 5)
	require.NoError(t, err)

	_, err = f.svc.NextItem(ctx, view.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, view.ID, 42, true, 1000)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSubmitAnswer_RequiresPendingItem(t *testing.T) {
	ctx := context.Background()
	f := newStudyFixture(20)
	f.expectStart(10, 5, twoItems(5))

	view, err := f.svc.StartSession(ctx, 10, 5)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, view.ID, 1, true, 1000)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
}

func TestNextItem_UnknownSession(t *testing.T) {
	f := newStudyFixture(20)

	_, err := f.svc.NextItem(context.Background(), "no-such-session")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}
