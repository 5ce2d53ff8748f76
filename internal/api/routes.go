package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/learners", func(r chi.Router) {
			r.Post("/", s.handleCreateLearner)
			r.Get("/", s.handleListLearners)
			r.Get("/{learnerID}", s.handleGetLearner)
			r.Delete("/{learnerID}", s.handleDeleteLearner)
			r.Get("/{learnerID}/due", s.handleDueCount)
			r.Get("/{learnerID}/response-times", s.handleResponseTimes)
			r.Route("/{learnerID}/decks/{deckID}/stats", func(r chi.Router) {
				r.Get("/", s.handleDeckStats)
				r.Get("/levels", s.handleLevelStats)
				r.Get("/difficulty", s.handleDifficultyStats)
				r.Get("/forget-risks", s.handleForgetRisks)
			})
		})

		r.Route("/decks", func(r chi.Router) {
			r.Post("/", s.handleCreateDeck)
			r.Post("/import", s.handleImportDeck)
			r.Get("/", s.handleListDecks)
			r.Get("/{id}", s.handleGetDeck)
			r.Post("/{id}/items", s.handleAddItems)
			r.Get("/{id}/items", s.handleListItems)
			r.Post("/{id}/enroll", s.handleEnroll)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/{sessionID}/next", s.handleNextItem)
			r.Post("/{sessionID}/answers", s.handleSubmitAnswer)
		})
	})

	return r
}
