// Package scheduler implements the adaptive spaced-repetition engine: the
// per-answer state-update function, due/difficulty/forgetting estimators and
// the priority ordering used to build study queues. Every function is a pure
// computation over a ProgressRecord; persistence belongs to the caller.
package scheduler

import (
	"math"
	"time"

	"github.com/tomas/studydeck/internal/models"
)

// Params holds every tunable constant of the scheduling algorithm.
// Zero values are not meaningful; start from DefaultParams.
type Params struct {
	// Ease factor bounds and per-answer deltas.
	InitialEase float64
	MinEase     float64
	MaxEase     float64
	EaseBonus   float64 // added on a correct answer
	EasePenalty float64 // subtracted on an incorrect answer

	// Interval growth. A correct answer multiplies the previous interval by
	// the ease factor; an incorrect answer collapses it to LapseIntervalDays.
	MinIntervalDays   int
	LapseIntervalDays int
	MaxIntervalDays   int

	// Difficulty nudges, applied within [0, 1].
	InitialDifficulty   float64
	DifficultyStepDown  float64 // correct answer
	DifficultyStepUp    float64 // incorrect answer
	FastResponseMs      int64   // answers at or below this get the full extra nudge
	SlowResponseMs      int64   // answers at or above this count as slow
	FastBonusMultiplier float64 // max scaling of the downward nudge for fast answers

	// Forgetting-curve prediction: recall probability below RecallThreshold
	// counts as forgotten.
	RecallThreshold float64

	// Session repeat policy: a missed item is reinserted Spacing positions
	// later, at most MaxRepeats extra times per session.
	Spacing    int
	MaxRepeats int
}

// DefaultParams returns the standard SM-2-flavoured constants.
func DefaultParams() Params {
	return Params{
		InitialEase: 2.5,
		MinEase:     1.3,
		MaxEase:     3.0,
		EaseBonus:   0.1,
		EasePenalty: 0.3,

		MinIntervalDays:   1,
		LapseIntervalDays: 1,
		MaxIntervalDays:   365,

		InitialDifficulty:   0.5,
		DifficultyStepDown:  0.05,
		DifficultyStepUp:    0.1,
		FastResponseMs:      3000,
		SlowResponseMs:      10000,
		FastBonusMultiplier: 2.0,

		RecallThreshold: 0.5,

		Spacing:    3,
		MaxRepeats: 2,
	}
}

// NewRecord builds a fresh ProgressRecord for an item the learner has never
// studied. NextReviewAt is now, making the item immediately due.
func (p Params) NewRecord(learnerID, itemID int64, now time.Time) models.ProgressRecord {
	return models.ProgressRecord{
		LearnerID:    learnerID,
		ItemID:       itemID,
		Level:        models.LevelUntrained,
		EaseFactor:   p.InitialEase,
		Difficulty:   p.InitialDifficulty,
		NextReviewAt: now,
		CreatedAt:    now,
	}
}

// normalize repairs a record so the scheduling math is safe regardless of
// what the store handed us: NaN or out-of-range numerics are replaced with
// defaults or clamped rather than rejected.
func (p Params) normalize(rec models.ProgressRecord) models.ProgressRecord {
	if math.IsNaN(rec.EaseFactor) || rec.EaseFactor <= 0 {
		rec.EaseFactor = p.InitialEase
	}
	rec.EaseFactor = clamp(rec.EaseFactor, p.MinEase, p.MaxEase)

	if math.IsNaN(rec.Difficulty) {
		rec.Difficulty = p.InitialDifficulty
	}
	rec.Difficulty = clamp(rec.Difficulty, 0, 1)

	if rec.Level < models.LevelUntrained {
		rec.Level = models.LevelUntrained
	}
	if rec.Level > models.LevelMastered {
		rec.Level = models.LevelMastered
	}
	if rec.Repetitions < 0 {
		rec.Repetitions = 0
	}
	if rec.IntervalDays < 0 {
		rec.IntervalDays = 0
	}
	if rec.IntervalDays > p.MaxIntervalDays {
		rec.IntervalDays = p.MaxIntervalDays
	}
	if rec.LastResponseMs < 0 {
		rec.LastResponseMs = 0
	}
	if math.IsNaN(rec.LastQuality) {
		rec.LastQuality = 0
	}
	return rec
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
