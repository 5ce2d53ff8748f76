package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, description, created_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Title, &d.Description, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, created_at
FROM decks
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: title=%s", deck.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (title, description)
VALUES (?, ?)
`, deck.Title, deck.Description)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Enroll(ctx context.Context, learnerID, deckID int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("enrolling learner: learner_id=%d, deck_id=%d", learnerID, deckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO enrollments (learner_id, deck_id)
VALUES (?, ?)
ON CONFLICT(learner_id, deck_id) DO NOTHING
`, learnerID, deckID)
	if err != nil {
		log.Error("failed to enroll learner: %v", err)
	}
	return err
}

func (r *deckRepository) EnrolledDecks(ctx context.Context, learnerID int64) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing enrolled decks: learner_id=%d", learnerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, d.title, d.description, d.created_at
FROM decks d
JOIN enrollments e ON e.deck_id = d.id
WHERE e.learner_id = ?
ORDER BY e.enrolled_at ASC
`, learnerID)
	if err != nil {
		log.Error("failed to list enrolled decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *deckRepository) IsEnrolled(ctx context.Context, learnerID, deckID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM enrollments WHERE learner_id = ? AND deck_id = ?
`, learnerID, deckID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
