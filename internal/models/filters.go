package models

// ItemFilter narrows item listings.
type ItemFilter struct {
	DeckID int64
	Kind   ItemKind
	Limit  int
	Offset int
}

// DueSummary is one learner's count of currently due items, used by the
// reminder relay to decide who to notify.
type DueSummary struct {
	LearnerID int64  `json:"learner_id"`
	Username  string `json:"username"`
	DueCount  int    `json:"due_count"`
}
