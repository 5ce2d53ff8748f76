package models

import "time"

// Progress level buckets. Level is a coarse mastery indicator derived from
// the recent answer history: it climbs one step per correct answer and drops
// back to LevelUntrained on any incorrect answer.
const (
	LevelUntrained = 0
	LevelMastered  = 3
)

// ProgressRecord tracks one learner's scheduling state for one item. There is
// at most one record per (learner, item); it is created lazily the first time
// the item is studied and mutated once per answered attempt.
type ProgressRecord struct {
	ID             int64     `json:"id"`
	LearnerID      int64     `json:"learner_id"`
	ItemID         int64     `json:"item_id"`
	Level          int       `json:"level"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	LastQuality    float64   `json:"last_quality"`
	LastResponseMs int64     `json:"last_response_ms"`
	Difficulty     float64   `json:"difficulty"`
	CorrectCount   int       `json:"correct_count"`
	IncorrectCount int       `json:"incorrect_count"`
	LastAttemptAt  time.Time `json:"last_attempt_at"`
	NextReviewAt   time.Time `json:"next_review_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Mastered reports whether the record has reached the top level bucket.
func (p ProgressRecord) Mastered() bool {
	return p.Level >= LevelMastered
}

// ReviewRecord is one answered attempt, kept for history and statistics.
type ReviewRecord struct {
	ID         int64     `json:"id"`
	LearnerID  int64     `json:"learner_id"`
	ItemID     int64     `json:"item_id"`
	Correct    bool      `json:"correct"`
	Quality    float64   `json:"quality"`
	ResponseMs int64     `json:"response_ms"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
