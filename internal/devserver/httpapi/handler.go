package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/benayed0/loopa-pro/internal/devserver/users"
	"github.com/benayed0/loopa-pro/internal/shared"
)

type magicLinkRequest struct {
	Email string `json:"email"`
}

type magicLinkResponse struct {
	Message    string `json:"message"`
	MagicToken string `json:"magicToken"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"accessToken"`
	User        *users.User `json:"user"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (s *Server) requestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	token, err := s.users.RequestMagicLink(r.Context(), req.Email)
	switch {
	case errors.Is(err, shared.ErrorValidation):
		writeError(w, http.StatusBadRequest, "email must be an email")
		return
	case err != nil:
		s.logger.Error(r.Context(), "magic link failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// no mail transport here; the token goes back in the response
	s.logger.Info(r.Context(), "magic link issued", "email", req.Email)

	writeJSON(w, http.StatusOK, magicLinkResponse{
		Message:    "Magic link sent to your email",
		MagicToken: token,
	})
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	grant, err := s.users.Redeem(r.Context(), req.Token)
	switch {
	case errors.Is(err, shared.ErrorValidation):
		writeError(w, http.StatusBadRequest, "token should not be empty")
		return
	case errors.Is(err, shared.ErrorInvalidToken), errors.Is(err, shared.ErrorTokenExpired):
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	case err != nil:
		s.logger.Error(r.Context(), "verify failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Message:     "Login successful",
		AccessToken: grant.AccessToken,
		User:        grant.User,
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{StatusCode: status, Message: msg})
}
