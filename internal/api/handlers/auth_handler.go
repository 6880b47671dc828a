package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mjcastro/gradesource-be/internal/auth"
	"github.com/mjcastro/gradesource-be/internal/services"
)

// AuthHandler handles HTTP requests for login and signup.
type AuthHandler struct {
	service      services.UserServiceProvider
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the token
// cookie Secure and should be set in production.
func NewAuthHandler(service services.UserServiceProvider, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookie: secureCookie}
}

// CredentialsPayload defines the structure for login and signup requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, token, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Login failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Signup handles new account registration and token issuance.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, token, err := h.service.Signup(r.Context(), payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField):
			writeError(w, http.StatusUnprocessableEntity, "You must provide a username and password")
		case errors.Is(err, services.ErrUsernameTaken):
			writeError(w, http.StatusUnprocessableEntity, "Username is already taken")
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to sign up user")
			writeError(w, http.StatusInternalServerError, "Failed to sign up")
		}
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Warn().Str("user_id", claims.UserID).Msg("User from token not found in DB")
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to load user")
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}
