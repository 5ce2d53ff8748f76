package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = `id, learner_id, item_id, level, ease_factor, interval_days, repetitions,
last_quality, last_response_ms, difficulty, correct_count, incorrect_count,
last_attempt_at, next_review_at, created_at`

func scanProgress(row interface {
	Scan(dest ...any) error
}) (models.ProgressRecord, error) {
	var p models.ProgressRecord
	var lastAttempt sql.NullTime
	err := row.Scan(&p.ID, &p.LearnerID, &p.ItemID, &p.Level, &p.EaseFactor, &p.IntervalDays,
		&p.Repetitions, &p.LastQuality, &p.LastResponseMs, &p.Difficulty,
		&p.CorrectCount, &p.IncorrectCount, &lastAttempt, &p.NextReviewAt, &p.CreatedAt)
	if lastAttempt.Valid {
		p.LastAttemptAt = lastAttempt.Time
	}
	return p, err
}

func (r *progressRepository) Get(ctx context.Context, learnerID, itemID int64) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: learner_id=%d, item_id=%d", learnerID, itemID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM progress
WHERE learner_id = ? AND item_id = ?
`, learnerID, itemID)

	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress yet: learner_id=%d, item_id=%d", learnerID, itemID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

// Save upserts the record keyed on (learner_id, item_id). Last write wins so
// a stale session cannot wedge the store; the newest answer is authoritative.
func (r *progressRepository) Save(ctx context.Context, rec models.ProgressRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving progress: learner_id=%d, item_id=%d, level=%d, interval=%d, ease=%.2f",
		rec.LearnerID, rec.ItemID, rec.Level, rec.IntervalDays, rec.EaseFactor)

	var lastAttempt any
	if !rec.LastAttemptAt.IsZero() {
		lastAttempt = rec.LastAttemptAt
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO progress (learner_id, item_id, level, ease_factor, interval_days, repetitions,
                      last_quality, last_response_ms, difficulty, correct_count, incorrect_count,
                      last_attempt_at, next_review_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(learner_id, item_id) DO UPDATE SET
    level = excluded.level,
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    repetitions = excluded.repetitions,
    last_quality = excluded.last_quality,
    last_response_ms = excluded.last_response_ms,
    difficulty = excluded.difficulty,
    correct_count = excluded.correct_count,
    incorrect_count = excluded.incorrect_count,
    last_attempt_at = excluded.last_attempt_at,
    next_review_at = excluded.next_review_at
RETURNING id
`, rec.LearnerID, rec.ItemID, rec.Level, rec.EaseFactor, rec.IntervalDays, rec.Repetitions,
		rec.LastQuality, rec.LastResponseMs, rec.Difficulty, rec.CorrectCount, rec.IncorrectCount,
		lastAttempt, rec.NextReviewAt).Scan(&id)
	if err != nil {
		log.Error("failed to save progress: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *progressRepository) ForDeck(ctx context.Context, learnerID, deckID int64) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching deck progress: learner_id=%d, deck_id=%d", learnerID, deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.learner_id, p.item_id, p.level, p.ease_factor, p.interval_days, p.repetitions,
       p.last_quality, p.last_response_ms, p.difficulty, p.correct_count, p.incorrect_count,
       p.last_attempt_at, p.next_review_at, p.created_at
FROM progress p
JOIN items i ON i.id = p.item_id
WHERE p.learner_id = ? AND i.deck_id = ?
ORDER BY p.item_id ASC
`, learnerID, deckID)
	if err != nil {
		log.Error("failed to query deck progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		records = append(records, p)
	}
	log.Debug("found %d progress records", len(records))
	return records, rows.Err()
}

func (r *progressRepository) CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM progress
WHERE learner_id = ? AND next_review_at <= ?
`, learnerID, now).Scan(&count)
	return count, err
}

func (r *progressRepository) LearnersWithDue(ctx context.Context, now time.Time) ([]models.DueSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("scanning learners with due items")

	rows, err := r.db.QueryContext(ctx, `
SELECT l.id, l.username, COUNT(p.id) AS due_count
FROM learners l
JOIN progress p ON p.learner_id = l.id
WHERE p.next_review_at <= ?
GROUP BY l.id, l.username
HAVING COUNT(p.id) > 0
ORDER BY due_count DESC
`, now)
	if err != nil {
		log.Error("failed to scan due learners: %v", err)
		return nil, err
	}
	defer rows.Close()

	var summaries []models.DueSummary
	for rows.Next() {
		var s models.DueSummary
		if err := rows.Scan(&s.LearnerID, &s.Username, &s.DueCount); err != nil {
			log.Error("failed to scan due summary: %v", err)
			return nil, err
		}
		summaries = append(summaries, s)
	}
	log.Debug("found %d learners with due items", len(summaries))
	return summaries, rows.Err()
}
