package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/auth"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/dmitrijs2005/gophqa/internal/server/services"
)

type messageResponse struct {
	Message string `json:"message"`
}

func credential(r *http.Request) string {
	return auth.CredentialFromHeader(r.Header.Get(common.AccessTokenHeaderName))
}

// handleListQuestions serves GET /questions[?limit=&offset=].
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	p, err := models.ParsePagination(r.URL.Query())
	if err != nil {
		writeError(r.Context(), s.logger, w, services.ParamError("rest.ListQuestions", err))
		return
	}

	list, err := s.questions.List(r.Context(), p)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetQuestion serves GET /questions/{id}.
func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.GetQuestion", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	q, err := s.questions.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// handleCreateQuestion serves POST /questions.
func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var nq models.NewQuestion
	if err := decodeJSON(w, r, "rest.CreateQuestion", &nq); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	q, err := s.questions.Create(r.Context(), credential(r), nq)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// handleUpdateQuestion serves PUT /questions/{id}.
func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.UpdateQuestion", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	var nq models.NewQuestion
	if err := decodeJSON(w, r, "rest.UpdateQuestion", &nq); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	q, err := s.questions.Update(r.Context(), credential(r), id, nq)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// handleDeleteQuestion serves DELETE /questions/{id}.
func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.DeleteQuestion", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	if _, err := s.questions.Delete(r.Context(), credential(r), id); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Question %d deleted", id)})
}

// handleListAnswers serves GET /questions/{id}/answers[?limit=&offset=].
func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rest.ListAnswers", "id")
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	p, err := models.ParsePagination(r.URL.Query())
	if err != nil {
		writeError(r.Context(), s.logger, w, services.ParamError("rest.ListAnswers", err))
		return
	}

	list, err := s.answers.ListByQuestion(r.Context(), id, p)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
