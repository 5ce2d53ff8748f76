package sqlite

import (
	"context"
	"database/sql"

	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DeckStats(ctx context.Context, learnerID, deckID int64) (*models.DeckStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching deck stats: learner_id=%d, deck_id=%d", learnerID, deckID)

	var stat models.DeckStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(DISTINCT i.id) AS total_items,
    COALESCE(SUM(p.correct_count + p.incorrect_count), 0) AS total_reviews,
    COUNT(DISTINCT CASE WHEN p.level >= 3 THEN p.id END) AS items_mastered,
    COUNT(DISTINCT CASE WHEN p.ease_factor < 2.0 AND p.correct_count + p.incorrect_count > 3 THEN p.id END) AS items_struggling,
    COUNT(DISTINCT CASE WHEN p.next_review_at <= CURRENT_TIMESTAMP THEN p.id END) AS items_due,
    COUNT(DISTINCT CASE WHEN p.next_review_at <= datetime('now', '+7 days') AND p.next_review_at > CURRENT_TIMESTAMP THEN p.id END) AS items_due_soon,
    CASE
        WHEN SUM(p.correct_count + p.incorrect_count) > 0
        THEN ROUND(100.0 * SUM(p.correct_count) / SUM(p.correct_count + p.incorrect_count), 1)
        ELSE 0
    END AS overall_accuracy,
    COALESCE(AVG(p.ease_factor), 0) AS avg_ease_factor,
    COALESCE(AVG(p.interval_days), 0) AS avg_interval_days
FROM items i
LEFT JOIN progress p ON p.item_id = i.id AND p.learner_id = ?
WHERE i.deck_id = ?
`, learnerID, deckID).Scan(
		&stat.TotalItems,
		&stat.TotalReviews,
		&stat.ItemsMastered,
		&stat.ItemsStruggling,
		&stat.ItemsDue,
		&stat.ItemsDueSoon,
		&stat.OverallAccuracy,
		&stat.AvgEaseFactor,
		&stat.AvgIntervalDays,
	)
	if err != nil {
		log.Error("failed to get deck stats: %v", err)
		return nil, err
	}
	return &stat, nil
}

func (r *statsRepository) LevelStats(ctx context.Context, learnerID, deckID int64) ([]models.LevelStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching level stats: learner_id=%d, deck_id=%d", learnerID, deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT p.level, COUNT(*) AS count
FROM progress p
JOIN items i ON i.id = p.item_id
WHERE p.learner_id = ? AND i.deck_id = ?
GROUP BY p.level
ORDER BY p.level ASC
`, learnerID, deckID)
	if err != nil {
		log.Error("failed to query level stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.LevelStat
	for rows.Next() {
		var s models.LevelStat
		if err := rows.Scan(&s.Level, &s.Count); err != nil {
			log.Error("failed to scan level stat: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) ResponseTimeStats(ctx context.Context, learnerID int64) (*models.ResponseTimeStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching response time stats: learner_id=%d", learnerID)

	var stat models.ResponseTimeStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    COALESCE(AVG(response_ms), 0) AS avg_response_ms,
    COALESCE(MIN(response_ms), 0) AS fastest_response_ms,
    COALESCE(MAX(response_ms), 0) AS slowest_response_ms
FROM review_history
WHERE learner_id = ?
`, learnerID).Scan(&stat.AvgResponseMs, &stat.FastestResponseMs, &stat.SlowestResponseMs)
	if err != nil {
		log.Error("failed to get response time stats: %v", err)
		return nil, err
	}
	return &stat, nil
}
