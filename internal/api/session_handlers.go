package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tomas/studydeck/internal/errors"
	"github.com/tomas/studydeck/internal/logger"
)

type startSessionRequest struct {
	LearnerID int64 `json:"learner_id"`
	DeckID    int64 `json:"deck_id"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.Study.StartSession(r.Context(), req.LearnerID, req.DeckID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("session %s started with %d items", view.ID, view.Remaining)
	respondJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleNextItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		handleError(w, r, errors.NewBadRequestError("session id required"))
		return
	}

	current, err := s.Study.NextItem(r.Context(), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, current)
}

type submitAnswerRequest struct {
	ItemID     int64 `json:"item_id"`
	Correct    bool  `json:"correct"`
	ResponseMs int64 `json:"response_ms"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		handleError(w, r, errors.NewBadRequestError("session id required"))
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.ResponseMs < 0 {
		handleError(w, r, errors.NewValidationError("response_ms", "must not be negative"))
		return
	}

	result, err := s.Study.SubmitAnswer(r.Context(), sessionID, req.ItemID, req.Correct, req.ResponseMs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
