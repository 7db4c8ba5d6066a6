package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
	events  services.EventServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider, events services.EventServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service, events: events}
}

// GetAll handles the public request to list all categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

// Get handles the request to get a single category by its ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category, err := h.service.GetCategoryByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, category)
}

// Create handles the request to create a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := h.service.CreateCategory(category)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("category.create", "info", "category \""+created.Name+"\" created", &created.ID)
	respondData(w, http.StatusCreated, created)
}

// Update handles the request to update an existing category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.service.UpdateCategory(id, category)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("category.update", "info", "category \""+updated.Name+"\" updated", &updated.ID)
	respondData(w, http.StatusOK, updated)
}

// Delete handles the request to delete a category. References held by
// modules and projects are pulled before the delete confirms.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteCategory(id); err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("category.delete", "info", "category deleted", &id)
	respondMessage(w, http.StatusOK, "category deleted")
}
