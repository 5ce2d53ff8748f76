package services

import (
	"context"
	"strings"

	"github.com/tomas/studydeck/internal/deckfile"
	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

// ItemInput is one item to add to a deck.
type ItemInput struct {
	Kind   models.ItemKind `json:"kind"`
	Prompt string          `json:"prompt"`
	Answer string          `json:"answer"`
}

// DeckService handles deck catalog and enrollment business logic
type DeckService interface {
	CreateDeck(ctx context.Context, title, description string) (*models.Deck, error)
	ListDecks(ctx context.Context) ([]models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	AddItems(ctx context.Context, deckID int64, inputs []ItemInput) ([]int64, error)
	ImportDeck(ctx context.Context, text string) (*models.Deck, int, error)
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	Enroll(ctx context.Context, learnerID, deckID int64) error
}

type deckService struct {
	learners repository.LearnerRepository
	decks    repository.DeckRepository
	items    repository.ItemRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(learners repository.LearnerRepository, decks repository.DeckRepository, items repository.ItemRepository) DeckService {
	return &deckService{learners: learners, decks: decks, items: items}
}

func (s *deckService) CreateDeck(ctx context.Context, title, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("title", "cannot be empty")
	}

	deck := models.Deck{Title: title, Description: strings.TrimSpace(description)}
	id, err := s.decks.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.decks.Get(ctx, id)
	if err != nil {
		log.Error("failed to reload created deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%d, title=%s", id, title)
	return created, nil
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) AddItems(ctx context.Context, deckID int64, inputs []ItemInput) ([]int64, error) {
	log := logger.FromContext(ctx)

	if len(inputs) == 0 {
		return nil, errors.NewValidationError("items", "cannot be empty")
	}

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	items := make([]models.Item, 0, len(inputs))
	for _, in := range inputs {
		kind := in.Kind
		if kind == "" {
			kind = models.KindFlashcard
		}
		if kind != models.KindFlashcard && kind != models.KindQuestion {
			return nil, errors.NewValidationError("kind", "must be flashcard or question")
		}
		if strings.TrimSpace(in.Prompt) == "" {
			return nil, errors.NewValidationError("prompt", "cannot be empty")
		}
		items = append(items, models.Item{
			DeckID: deckID,
			Kind:   kind,
			Prompt: strings.TrimSpace(in.Prompt),
			Answer: strings.TrimSpace(in.Answer),
		})
	}

	ids, err := s.items.InsertBatch(ctx, items)
	if err != nil {
		log.Error("failed to insert items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("added %d items to deck %d", len(ids), deckID)
	return ids, nil
}

// ImportDeck creates a deck with its items from deckfile text. It returns
// the created deck and the number of imported items.
func (s *deckService) ImportDeck(ctx context.Context, text string) (*models.Deck, int, error) {
	log := logger.FromContext(ctx)

	parsed, err := deckfile.Parse(text)
	if err != nil {
		log.Warn("deckfile rejected: %v", err)
		return nil, 0, errors.NewValidationError("deckfile", err.Error())
	}
	if len(parsed.Items) == 0 {
		return nil, 0, errors.NewValidationError("deckfile", "no items")
	}

	deck, err := s.CreateDeck(ctx, parsed.Title, parsed.Description)
	if err != nil {
		return nil, 0, err
	}

	inputs := make([]ItemInput, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		inputs = append(inputs, ItemInput{
			Kind:   models.ItemKind(it.Kind),
			Prompt: it.Prompt,
			Answer: it.Answer,
		})
	}

	ids, err := s.AddItems(ctx, deck.ID, inputs)
	if err != nil {
		return nil, 0, err
	}

	log.Info("imported deck %q with %d items", deck.Title, len(ids))
	return deck, len(ids), nil
}

func (s *deckService) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return items, nil
}

func (s *deckService) Enroll(ctx context.Context, learnerID, deckID int64) error {
	log := logger.FromContext(ctx)

	learner, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to load learner: %v", err)
		return errors.NewInternalError(err)
	}
	if learner == nil {
		return errors.NewNotFoundError("learner", learnerID)
	}

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}

	if err := s.decks.Enroll(ctx, learnerID, deckID); err != nil {
		log.Error("failed to enroll: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("learner %d enrolled in deck %d", learnerID, deckID)
	return nil
}
