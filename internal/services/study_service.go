package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
	"github.com/tomas/studydeck/internal/scheduler"
	"github.com/tomas/studydeck/internal/session"
)

// SessionView is the API-facing snapshot of an active study session.
type SessionView struct {
	ID        string    `json:"id"`
	LearnerID int64     `json:"learner_id"`
	DeckID    int64     `json:"deck_id"`
	Remaining int       `json:"remaining"`
	StartedAt time.Time `json:"started_at"`
}

// CurrentItem is the item a session presents next.
type CurrentItem struct {
	Item      models.Item `json:"item"`
	Remaining int         `json:"remaining"`
	Done      bool        `json:"done"`
}

// AnswerResult reports the outcome of one answered attempt.
type AnswerResult struct {
	Progress        models.ProgressRecord     `json:"progress"`
	DifficultyLabel scheduler.DifficultyLabel `json:"difficulty_label"`
	DaysToForget    float64                   `json:"days_to_forget"`
	Requeued        bool                      `json:"requeued"`
	Remaining       int                       `json:"remaining"`
}

/// StudyService drives study sessions: it builds the prioritized queue,
// applies the scheduler on every answer and persists the results.
type StudyService interface {
	StartSession(ctx context.Context, learnerID, deckID int64) (*SessionView, error)
	NextItem(ctx context.Context, sessionID string) (*CurrentItem, error)
	SubmitAnswer(ctx context.Context, sessionID string, itemID int64, correct bool, responseMs int64) (*AnswerResult, error)
}

type activeSession struct {
	id        string
	learnerID int64
	deckID    int64
	queue     *session.Queue
	current   *scheduler.QueueItem
	startedAt time.Time
}

type studyService struct {
	learners    repository.LearnerRepository
	decks       repository.DeckRepository
	items       repository.ItemRepository
	progress    repository.ProgressRepository
	reviews     repository.ReviewRepository
	params      scheduler.Params
	sessionSize int

	mu       sync.Mutex
	sessions map[string]*activeSession
}

// NewStudyService creates a new StudyService. sessionSize bounds how many
// items a single session pulls from the due pool.
func NewStudyService(
	learners repository.LearnerRepository,
	decks repository.DeckRepository,
	items repository.ItemRepository,
	progress repository.ProgressRepository,
	reviews repository.ReviewRepository,
	params scheduler.Params,
	sessionSize int,
) StudyService {
	if sessionSize < 1 {
		sessionSize = 20
	}
	return &studyService{
		learners:    learners,
		decks:       decks,
		items:       items,
		progress:    progress,
		reviews:     reviews,
		params:      params,
		sessionSize: sessionSize,
		sessions:    make(map[string]*activeSession),
	}
}

func (s *studyService) StartSession(ctx context.Context, learnerID, deckID int64) (*SessionView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: learner_id=%d, deck_id=%d", learnerID, deckID)

	learner, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to load learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", learnerID)
	}

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	enrolled, err := s.decks.IsEnrolled(ctx, learnerID, deckID)
	if err != nil {
		log.Error("failed to check enrollment: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if !enrolled {
		return nil, errors.NewValidationError("deck_id", "learner is not enrolled in this deck")
	}

	items, err := s.items.List(ctx, models.ItemFilter{DeckID: deckID})
	if err != nil {
		log.Error("failed to list deck items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(items) == 0 {
		return nil, errors.NewValidationError("deck_id", "deck has no items to study")
	}

	records, err := s.progress.ForDeck(ctx, learnerID, deckID)
	if err != nil {
		log.Error("failed to load deck progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	byItem := make(map[int64]models.ProgressRecord, len(records))
	for _, rec := range records {
		byItem[rec.ItemID] = rec
	}

	now := time.Now()
	pool := make([]scheduler.QueueItem, 0, len(items))
	for _, item := range items {
		rec, ok := byItem[item.ID]
		if !ok {
			// First-ever study of this item: start from the defaults.
			rec = s.params.NewRecord(learnerID, item.ID, now)
		}
		pool = append(pool, scheduler.QueueItem{Item: item, Progress: rec})
	}

	ordered := scheduler.SortByPriority(pool, now)
	if len(ordered) > s.sessionSize {
		ordered = ordered[:s.sessionSize]
	}

	sess := &activeSession{
		id:        uuid.NewString(),
		learnerID: learnerID,
		deckID:    deckID,
		queue:     session.NewQueue(ordered, s.params.Spacing, s.params.MaxRepeats),
		startedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Info("session started: id=%s, items=%d", sess.id, sess.queue.Len())
	return &SessionView{
		ID:        sess.id,
		LearnerID: learnerID,
		DeckID:    deckID,
		Remaining: sess.queue.Len(),
		StartedAt: sess.startedAt,
	}, nil
}

func (s *studyService) NextItem(ctx context.Context, sessionID string) (*CurrentItem, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	// Asking again before answering re-presents the same item.
	if sess.current != nil {
		return &CurrentItem{Item: sess.current.Item, Remaining: sess.queue.Len()}, nil
	}

	item, ok := sess.queue.Next()
	if !ok {
		log.Debug("session finished: id=%s", sessionID)
		delete(s.sessions, sessionID)
		return &CurrentItem{Done: true}, nil
	}
	sess.current = &item
	return &CurrentItem{Item: item.Item, Remaining: sess.queue.Len()}, nil
}

func (s *studyService) SubmitAnswer(ctx context.Context, sessionID string, itemID int64, correct bool, responseMs int64) (*AnswerResult, error) {
	log := logger.FromContext(ctx)

	if responseMs < 0 {
		responseMs = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	if sess.current == nil {
		return nil, errors.NewBadRequestError("no item is pending an answer; call next first")
	}
	if sess.current.Item.ID != itemID {
		return nil, errors.NewValidationError("item_id", "answer does not match the presented item")
	}

	now := time.Now()
	current := *sess.current
	updated := s.params.Advance(current.Progress, correct, responseMs, now)

	// Persistence failures must not corrupt the in-memory session: the
	// learner keeps studying and the next save wins.
	if _, err := s.progress.Save(ctx, updated); err != nil {
		log.Warn("failed to persist progress, session continues: %v", err)
	}
	rev := models.ReviewRecord{
		LearnerID:  sess.learnerID,
		ItemID:     itemID,
		Correct:    correct,
		Quality:    updated.LastQuality,
		ResponseMs: responseMs,
		ReviewedAt: now,
	}
	if _, err := s.reviews.Insert(ctx, rev); err != nil {
		log.Warn("failed to store review history: %v", err)
	}

	requeued := false
	if !correct {
		requeued = sess.queue.RequeueMiss(scheduler.QueueItem{Item: current.Item, Progress: updated})
	}
	sess.current = nil

	log.Debug("answer recorded: session=%s, item=%d, correct=%t, level=%d, interval=%d",
		sessionID, itemID, correct, updated.Level, updated.IntervalDays)

	return &AnswerResult{
		Progress:        updated,
		DifficultyLabel: scheduler.Classify(updated.Difficulty),
		DaysToForget:    s.params.PredictForgetDays(updated),
		Requeued:        requeued,
		Remaining:       sess.queue.Len(),
	}, nil
}
