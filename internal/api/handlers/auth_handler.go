package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/eduportfolio/eduportfolio-be/internal/auth"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the admin and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.service.AuthenticateUser(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, r, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, map[string]string{"token": token})
}
