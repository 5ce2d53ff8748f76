package scheduler

import (
	"math"
	"time"

	"github.com/tomas/studydeck/internal/models"
)

// DifficultyLabel is the coarse bucket shown in the UI for an item's
// difficulty estimate.
type DifficultyLabel string

const (
	LabelEasy   DifficultyLabel = "easy"
	LabelMedium DifficultyLabel = "medium"
	LabelHard   DifficultyLabel = "hard"
)

// Shared bucket thresholds: difficulty < EasyBelow is easy, < MediumBelow is
// medium, everything else is hard. Single source of truth so labels never
// drift between callers.
const (
	EasyBelow   = 0.33
	MediumBelow = 0.66
)

// Classify maps a difficulty value in [0, 1] onto its label.
func Classify(difficulty float64) DifficultyLabel {
	switch {
	case difficulty < EasyBelow:
		return LabelEasy
	case difficulty < MediumBelow:
		return LabelMedium
	default:
		return LabelHard
	}
}

// DaysUntilDue returns the signed number of days until the record is due.
// Negative means overdue; callers clamp for display but priority ordering
// relies on the raw value.
func DaysUntilDue(rec models.ProgressRecord, now time.Time) float64 {
	return rec.NextReviewAt.Sub(now).Hours() / 24
}

// PredictForgetDays estimates how many days until the learner likely forgets
// the item absent review, from an exponential forgetting curve whose
// stability grows with ease factor and streak length and shrinks with item
// difficulty. Monotonic: higher ease or more repetitions never shorten the
// estimate, higher difficulty never lengthens it.
func (p Params) PredictForgetDays(rec models.ProgressRecord) float64 {
	rec = p.normalize(rec)

	// Memory stability in days. The (1.5 - difficulty) term stays positive
	// for any difficulty in [0, 1].
	stability := rec.EaseFactor * float64(1+rec.Repetitions) * (1.5 - rec.Difficulty)

	// Solve exp(-t/S) = threshold for t.
	threshold := p.RecallThreshold
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultParams().RecallThreshold
	}
	return stability * math.Log(1/threshold)
}
