package api

import (
	"net/http"
)

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlParamInt64(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deckID, err := urlParamInt64(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stat, err := s.Stats.DeckStats(r.Context(), learnerID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stat)
}

func (s *Server) handleLevelStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlParamInt64(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deckID, err := urlParamInt64(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.Stats.LevelStats(r.Context(), learnerID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleDifficultyStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlParamInt64(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deckID, err := urlParamInt64(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.Stats.DifficultyBreakdown(r.Context(), learnerID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleForgetRisks(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlParamInt64(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deckID, err := urlParamInt64(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	limit := queryInt(r, "limit", 10)
	risks, err := s.Stats.ForgetRisks(r.Context(), learnerID, deckID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, risks)
}

func (s *Server) handleResponseTimes(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlParamInt64(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stat, err := s.Stats.ResponseTimeStats(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stat)
}

func (s *Server) handleDueCount(w http.ResponseWriter, r *http.Request) {
	learnerID, err := urlParamInt64(r, "learnerID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	count, err := s.Stats.DueCount(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{"due": count})
}
