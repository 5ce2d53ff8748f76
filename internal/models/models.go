package models

import "time"

// Learner is a registered study account.
type Learner struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Deck is a collection of study items a learner can enroll in.
type Deck struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemKind distinguishes flashcards from quiz questions. Both are scheduled
// identically; the kind only matters for presentation.
type ItemKind string

const (
	KindFlashcard ItemKind = "flashcard"
	KindQuestion  ItemKind = "question"
)

// Item is a single studyable unit inside a deck.
type Item struct {
	ID        int64     `json:"id"`
	DeckID    int64     `json:"deck_id"`
	Kind      ItemKind  `json:"kind"`
	Prompt    string    `json:"prompt"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// Enrollment links a learner to a deck they are studying.
type Enrollment struct {
	ID         int64     `json:"id"`
	LearnerID  int64     `json:"learner_id"`
	DeckID     int64     `json:"deck_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
