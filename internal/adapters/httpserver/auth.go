package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-app/vitrina/internal/domain"
	"github.com/vitrina-app/vitrina/internal/usecase"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/auth/"), "/")
	switch action {
	case "signup":
		s.handleSignup(w, r)
	case "login":
		s.handleLogin(w, r)
	case "refresh":
		s.handleRefresh(w, r)
	case "logout":
		s.handleLogout(w, r)
	case "me":
		s.handleMe(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, 400, map[string]any{"error": "Invalid request body"})
		return
	}
	user, err := s.auth.Signup(r.Context(), in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			writeJSON(w, 400, map[string]any{"error": "Email already registered"})
		case errors.Is(err, usecase.ErrInvalidEmail):
			writeJSON(w, 400, map[string]any{"error": "Invalid email format"})
		case errors.Is(err, usecase.ErrWeakPassword):
			writeJSON(w, 400, map[string]any{"error": "Password must be at least 8 characters"})
		default:
			log.Error().Err(err).Msg("signup")
			writeJSON(w, 500, map[string]any{"error": "Failed to create account"})
		}
		return
	}
	if err := s.setAuthCookies(w, user.ID); err != nil {
		log.Error().Err(err).Msg("firma de tokens")
		writeJSON(w, 500, map[string]any{"error": "Failed to create session"})
		return
	}
	writeJSON(w, 201, map[string]any{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, 400, map[string]any{"error": "Invalid request body"})
		return
	}
	user, err := s.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			writeJSON(w, 401, map[string]any{"error": "Invalid email or password"})
			return
		}
		log.Error().Err(err).Msg("login")
		writeJSON(w, 500, map[string]any{"error": "Failed to log in"})
		return
	}
	if err := s.setAuthCookies(w, user.ID); err != nil {
		log.Error().Err(err).Msg("firma de tokens")
		writeJSON(w, 500, map[string]any{"error": "Failed to create session"})
		return
	}
	writeJSON(w, 200, map[string]any{"user": user})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	c, err := r.Cookie("refreshToken")
	if err != nil {
		writeJSON(w, 401, map[string]any{"error": "No refresh token"})
		return
	}
	userID, err := s.auth.VerifyRefresh(c.Value)
	if err != nil {
		writeJSON(w, 401, map[string]any{"error": "Invalid refresh token"})
		return
	}
	if err := s.setAuthCookies(w, userID); err != nil {
		log.Error().Err(err).Msg("firma de tokens")
		writeJSON(w, 500, map[string]any{"error": "Failed to refresh session"})
		return
	}
	writeJSON(w, 200, map[string]any{"message": "Session refreshed"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	clearCookie(w, "accessToken")
	clearCookie(w, "refreshToken")
	writeJSON(w, 200, map[string]any{"message": "Logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, 404, map[string]any{"error": "User not found"})
		return
	}
	writeJSON(w, 200, map[string]any{"user": user})
}

func (s *Server) setAuthCookies(w http.ResponseWriter, userID uuid.UUID) error {
	access, err := s.auth.AccessToken(userID)
	if err != nil {
		return err
	}
	refresh, err := s.auth.RefreshToken(userID)
	if err != nil {
		return err
	}
	secure := os.Getenv("APP_ENV") == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    access,
		Path:     "/",
		MaxAge:   int(usecase.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(usecase.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireAuth valida la cookie de acceso y devuelve el user id.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie("accessToken")
	if err != nil {
		writeJSON(w, 401, map[string]any{"error": "Authentication required"})
		return uuid.Nil, false
	}
	userID, err := s.auth.VerifyAccess(c.Value)
	if err != nil {
		writeJSON(w, 401, map[string]any{"error": "Invalid or expired session"})
		return uuid.Nil, false
	}
	return userID, true
}
