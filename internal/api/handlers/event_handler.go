package handlers

import (
	"net/http"
	"strconv"

	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// EventHandler serves the admin activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request for the most recent events.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, events)
}
