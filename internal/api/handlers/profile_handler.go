package handlers

import (
	"net/http"
	"strings"

	"github.com/eduportfolio/eduportfolio-be/internal/auth"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// ProfileHandler handles HTTP requests for the singleton profile.
type ProfileHandler struct {
	service services.ProfileServiceProvider
	events  services.EventServiceProvider
	tokens  *auth.TokenManager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileServiceProvider, events services.EventServiceProvider, tokens *auth.TokenManager) *ProfileHandler {
	return &ProfileHandler{service: service, events: events, tokens: tokens}
}

// Get serves the profile. The route is public; a valid bearer token lifts
// the caller to the authenticated view, anything else falls back to the
// anonymous one rather than rejecting the request.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if _, err := h.tokens.Validate(tokenStr); err == nil {
			authenticated = true
		}
	}

	profile, err := h.service.GetProfile(authenticated)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, profile)
}

// Update replaces the singleton profile, creating it when absent.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := decodeBody(r, &profile); err != nil {
		respondError(w, r, err)
		return
	}

	updated, created, err := h.service.UpdateProfile(profile)
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.events.CreateEvent("profile.update", "info", "profile updated", &updated.ID)
	respondData(w, status, updated)
}
