package scheduler

import (
	"time"

	"github.com/tomas/studydeck/internal/models"
)

// Advance applies one answered attempt to a progress record and returns the
// updated record. The input is not mutated and no I/O happens here; the
// caller persists the result.
//
// A correct answer extends the streak, raises the ease factor and grows the
// interval multiplicatively. An incorrect answer resets the streak and level,
// lowers the ease factor (never below MinEase) and collapses the interval to
// LapseIntervalDays, independent of how long the streak was.
func (p Params) Advance(rec models.ProgressRecord, wasCorrect bool, responseMs int64, now time.Time) models.ProgressRecord {
	rec = p.normalize(rec)
	if responseMs < 0 {
		responseMs = 0
	}

	if wasCorrect {
		rec.Repetitions++
		rec.CorrectCount++
		rec.EaseFactor = clamp(rec.EaseFactor+p.EaseBonus, p.MinEase, p.MaxEase)
		rec.IntervalDays = p.nextInterval(rec.IntervalDays, rec.EaseFactor)
		if rec.Level < models.LevelMastered {
			rec.Level++
		}
		rec.Difficulty = clamp(rec.Difficulty-p.DifficultyStepDown*(1+p.fastness(responseMs)*(p.FastBonusMultiplier-1)), 0, 1)
	} else {
		rec.Repetitions = 0
		rec.IncorrectCount++
		rec.EaseFactor = clamp(rec.EaseFactor-p.EasePenalty, p.MinEase, p.MaxEase)
		rec.IntervalDays = p.LapseIntervalDays
		rec.Level = models.LevelUntrained
		rec.Difficulty = clamp(rec.Difficulty+p.DifficultyStepUp, 0, 1)
	}

	rec.LastQuality = p.quality(wasCorrect, responseMs)
	rec.LastResponseMs = responseMs
	rec.LastAttemptAt = now
	rec.NextReviewAt = now.Add(time.Duration(rec.IntervalDays) * 24 * time.Hour)
	return rec
}

// nextInterval grows the review interval after a correct answer.
func (p Params) nextInterval(prevDays int, ease float64) int {
	days := int(float64(prevDays) * ease)
	if days <= prevDays {
		days = prevDays + 1
	}
	if days < p.MinIntervalDays {
		days = p.MinIntervalDays
	}
	if days > p.MaxIntervalDays {
		days = p.MaxIntervalDays
	}
	return days
}

// fastness maps the response time onto [0, 1]: 1 at or below FastResponseMs,
// 0 at or above SlowResponseMs, linear in between.
func (p Params) fastness(responseMs int64) float64 {
	if responseMs <= p.FastResponseMs {
		return 1
	}
	if responseMs >= p.SlowResponseMs {
		return 0
	}
	span := float64(p.SlowResponseMs - p.FastResponseMs)
	return 1 - float64(responseMs-p.FastResponseMs)/span
}

// quality condenses correctness and latency into one signal in [0, 1].
// Incorrect is 0; a fast correct answer approaches 1, a slow one 0.5.
func (p Params) quality(wasCorrect bool, responseMs int64) float64 {
	if !wasCorrect {
		return 0
	}
	return 0.5 + 0.5*p.fastness(responseMs)
}
