package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// ModuleHandler handles HTTP requests for modules.
type ModuleHandler struct {
	service services.ModuleServiceProvider
	events  services.EventServiceProvider
}

// NewModuleHandler creates a new ModuleHandler.
func NewModuleHandler(service services.ModuleServiceProvider, events services.EventServiceProvider) *ModuleHandler {
	return &ModuleHandler{service: service, events: events}
}

// GetAll handles the public request to list all modules with populated
// categories.
func (h *ModuleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	modules, err := h.service.GetAllModules()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, modules)
}

// Get handles the request to get a single module by its ID.
func (h *ModuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	module, err := h.service.GetModuleByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, module)
}

// Create handles the request to create a new module.
func (h *ModuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var module models.Module
	if err := decodeBody(r, &module); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := h.service.CreateModule(module)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("module.create", "info", "module \""+created.Name+"\" created", &created.ID)
	respondData(w, http.StatusCreated, created)
}

// Update handles the request to replace an existing module.
func (h *ModuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var module models.Module
	if err := decodeBody(r, &module); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.service.UpdateModule(id, module)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("module.update", "info", "module \""+updated.Name+"\" updated", &updated.ID)
	respondData(w, http.StatusOK, updated)
}

// Delete handles the request to delete a module.
func (h *ModuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteModule(id); err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("module.delete", "info", "module deleted", &id)
	respondMessage(w, http.StatusOK, "module deleted")
}
