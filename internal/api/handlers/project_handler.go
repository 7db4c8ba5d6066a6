package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	service services.ProjectServiceProvider
	events  services.EventServiceProvider
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service services.ProjectServiceProvider, events services.EventServiceProvider) *ProjectHandler {
	return &ProjectHandler{service: service, events: events}
}

// GetAll handles the public request to list all projects with populated
// categories.
func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAllProjects()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, projects)
}

// Get handles the request to get a single project by its ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	project, err := h.service.GetProjectByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, project)
}

// Create handles the request to create a new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := decodeBody(r, &project); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := h.service.CreateProject(project)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("project.create", "info", "project \""+created.Title+"\" created", &created.ID)
	respondData(w, http.StatusCreated, created)
}

// Update handles the request to replace an existing project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var project models.Project
	if err := decodeBody(r, &project); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := h.service.UpdateProject(id, project)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("project.update", "info", "project \""+updated.Title+"\" updated", &updated.ID)
	respondData(w, http.StatusOK, updated)
}

// Delete handles the request to delete a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProject(id); err != nil {
		respondError(w, r, err)
		return
	}

	h.events.CreateEvent("project.delete", "info", "project deleted", &id)
	respondMessage(w, http.StatusOK, "project deleted")
}
