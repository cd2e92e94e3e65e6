package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

type accountResponse struct {
	ID    models.AccountID `json:"id"`
	Email string           `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// handleRegistration serves POST /registration.
func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if err := decodeJSON(w, r, "rest.Registration", &c); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	a, err := s.accounts.Register(r.Context(), c.Email, c.Password)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountResponse{ID: a.ID, Email: a.Email})
}

// handleLogin serves POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c models.Credentials
	if err := decodeJSON(w, r, "rest.Login", &c); err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}

	token, err := s.accounts.Login(r.Context(), c.Email, c.Password)
	if err != nil {
		writeError(r.Context(), s.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
