package api

import (
	"io"
	"net/http"

	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/services"
)

type createDeckRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.CreateDeck(r.Context(), req.Title, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck created: %s", deck.Title)
	respondJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.Decks.ListDecks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.GetDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

type addItemsRequest struct {
	Items []services.ItemInput `json:"items"`
}

func (s *Server) handleAddItems(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req addItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ids, err := s.Decks.AddItems(r.Context(), deckID, req.Items)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("added %d items to deck %d", len(ids), deckID)
	respondJSON(w, r, http.StatusCreated, map[string]any{"item_ids": ids})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.ItemFilter{
		DeckID: deckID,
		Kind:   models.ItemKind(r.URL.Query().Get("kind")),
		Limit:  queryInt(r, "limit", 100),
		Offset: queryInt(r, "offset", 0),
	}

	items, err := s.Decks.ListItems(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, items)
}

// handleImportDeck accepts a plain text deckfile body and creates the deck
// with all of its items in one request.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read request body"))
		return
	}

	deck, count, err := s.Decks.ImportDeck(r.Context(), string(body))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("imported deck %d with %d items", deck.ID, count)
	respondJSON(w, r, http.StatusCreated, map[string]any{
		"deck":       deck,
		"item_count": count,
	})
}

type enrollRequest struct {
	LearnerID int64 `json:"learner_id"`
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Decks.Enroll(r.Context(), req.LearnerID, deckID); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("learner %d enrolled in deck %d", req.LearnerID, deckID)
	w.WriteHeader(http.StatusNoContent)
}
