package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"options-trade-log-go/internal/auth"
	"options-trade-log-go/internal/trades"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := s.credentials.Register(in.Email, in.Password); err != nil {
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			errorJSON(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, auth.ErrDuplicateEmail):
			errorJSON(w, http.StatusBadRequest, "User already exists")
		default:
			s.internalError(w, "register failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "User registered"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := s.credentials.Authenticate(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.internalError(w, "login failed", err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.internalError(w, "token issue failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	list, err := s.repo.ListForUser(claims.UserID)
	if err != nil {
		s.internalError(w, "list trades failed", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var in trades.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := s.repo.Create(claims.UserID, in); err != nil {
		s.tradeError(w, "create trade failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid trade id")
		return
	}

	var in trades.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := s.repo.Update(claims.UserID, uint(id), in); err != nil {
		s.tradeError(w, "update trade failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid trade id")
		return
	}

	if err := s.repo.Delete(claims.UserID, uint(id)); err != nil {
		s.tradeError(w, "delete trade failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// tradeError maps repository errors onto the HTTP taxonomy: validation
// failures to 400, missing-or-foreign trades to 404, the rest to 500.
func (s *Server) tradeError(w http.ResponseWriter, msg string, err error) {
	var verr *trades.ValidationError
	switch {
	case errors.As(err, &verr):
		errorJSON(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, trades.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "Trade not found")
	default:
		s.internalError(w, msg, err)
	}
}

// internalError logs the detail server-side and leaks nothing to the client.
func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	errorJSON(w, http.StatusInternalServerError, "Internal server error")
}
