package sqlite

import (
	"context"
	"database/sql"

	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, rev models.ReviewRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: learner_id=%d, item_id=%d, correct=%t", rev.LearnerID, rev.ItemID, rev.Correct)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (learner_id, item_id, correct, quality, response_ms, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, rev.LearnerID, rev.ItemID, rev.Correct, rev.Quality, rev.ResponseMs, rev.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *reviewRepository) ListRecent(ctx context.Context, learnerID int64, limit int) ([]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing recent reviews: learner_id=%d, limit=%d", learnerID, limit)

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, learner_id, item_id, correct, quality, response_ms, reviewed_at
FROM review_history
WHERE learner_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT ?
`, learnerID, limit)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reviews []models.ReviewRecord
	for rows.Next() {
		var rev models.ReviewRecord
		if err := rows.Scan(&rev.ID, &rev.LearnerID, &rev.ItemID, &rev.Correct, &rev.Quality, &rev.ResponseMs, &rev.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
