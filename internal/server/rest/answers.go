package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// handleCreateAnswer serves POST /answers.
func (s *Server) handleCreateAnswer(w http.ResponseWriter, r *http.Request) {
	var na models.NewAnswer
	if err := decodeJSON(w, r, "rest.CreateAnswer", &na); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	a, err := s.answers.Create(r.Context(), credential(r), na)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.GetAnswer", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	a, err := s.answers.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.UpdateAnswer", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	var na models.NewAnswer
	if err := decodeJSON(w, r, "rest.UpdateAnswer", &na); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	a, err := s.answers.Update(r.Context(), credential(r), id, na)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.DeleteAnswer", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	if _, err := s.answers.Delete(r.Context(), credential(r), id); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Answer %d deleted", id)})
}
