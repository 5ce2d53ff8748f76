package api

import (
	"github.com/tomas/studydeck/internal/db"
	"github.com/tomas/studydeck/internal/services"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	DB       *db.DB
	Learners services.LearnerService
	Decks    services.DeckService
	Study    services.StudyService
	Stats    services.StatsService
}
