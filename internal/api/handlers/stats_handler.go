package handlers

import (
	"net/http"

	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// StatsHandler serves the public dashboard counters.
type StatsHandler struct {
	service services.StatsServiceProvider
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service services.StatsServiceProvider) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles the request for content statistics.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}
