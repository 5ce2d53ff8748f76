package models

// DeckStat summarizes one learner's progress over a deck.
type DeckStat struct {
	TotalItems      int     `json:"total_items"`
	TotalReviews    int     `json:"total_reviews"`
	ItemsMastered   int     `json:"items_mastered"`
	ItemsStruggling int     `json:"items_struggling"`
	ItemsDue        int     `json:"items_due"`
	ItemsDueSoon    int     `json:"items_due_soon"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}

// LevelStat counts items per mastery level for completion-rate displays.
type LevelStat struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// DifficultyStat counts items per difficulty label.
type DifficultyStat struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ForgetRisk pairs an item with its predicted days-until-forgotten, used to
// surface items worth reviewing before they are formally due.
type ForgetRisk struct {
	ItemID       int64   `json:"item_id"`
	Prompt       string  `json:"prompt"`
	DaysToForget float64 `json:"days_to_forget"`
}

// ResponseTimeStat aggregates answer latency over a learner's history.
type ResponseTimeStat struct {
	AvgResponseMs     float64 `json:"avg_response_ms"`
	FastestResponseMs int64   `json:"fastest_response_ms"`
	SlowestResponseMs int64   `json:"slowest_response_ms"`
}
