package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/api/shared"
	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/store"
)

// Listing page sizes. Offsets and limits outside these bounds are clamped
// rather than rejected.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProjectHandler handles public and admin project requests.
type ProjectHandler struct {
	projectStore store.ProjectStore
	validate     *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler with the given dependencies.
func NewProjectHandler(projectStore store.ProjectStore) *ProjectHandler {
	return &ProjectHandler{
		projectStore: projectStore,
		validate:     validator.New(),
	}
}

// ListPublished handles GET /api/projects. Only published projects are
// visible to unauthenticated callers.
func (h *ProjectHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	projects, err := h.projectStore.List(r.Context(), store.ProjectFilter{
		PublishedOnly: true,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProjectListResponse(projects, limit, offset))
}

// GetBySlug handles GET /api/projects/{slug}. Unpublished projects are not
// exposed on the public route, even when the slug is known.
func (h *ProjectHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.projectStore.GetBySlug(r.Context(), slug)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, "Project not found", err)
		return
	}

	if !project.Published {
		shared.RespondWithError(w, r, http.StatusNotFound, "Project not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProjectResponse(project))
}

// ListAll handles GET /api/admin/projects, returning published and
// unpublished projects alike.
func (h *ProjectHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	projects, err := h.projectStore.List(r.Context(), store.ProjectFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProjectListResponse(projects, limit, offset))
}

// Create handles POST /api/admin/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid project data", err)
		return
	}

	project, err := domain.NewProject(req.Title, req.Summary, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Invalid project data", err)
		return
	}

	project.RepoURL = req.RepoURL
	project.LiveURL = req.LiveURL
	if req.Tags != nil {
		project.Tags = req.Tags
	}
	project.Featured = req.Featured
	project.Published = req.Published

	if err := h.projectStore.Create(r.Context(), project); err != nil {
		status := MapErrorToStatusCode(err)
		msg := "Failed to create project"
		if status == http.StatusConflict {
			msg = "A project with this title already exists"
		}
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newProjectResponse(project))
}

// Update handles PUT /api/admin/projects/{id}. Only the fields present in
// the payload are changed; renaming re-derives the slug.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid project data", err)
		return
	}

	project, err := h.projectStore.GetByID(r.Context(), id)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, "Project not found", err)
		return
	}

	if req.Title != nil {
		if err := project.Rename(*req.Title); err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Invalid project data", err)
			return
		}
	}
	if req.Summary != nil {
		project.Summary = *req.Summary
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.RepoURL != nil {
		project.RepoURL = *req.RepoURL
	}
	if req.LiveURL != nil {
		project.LiveURL = *req.LiveURL
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}
	if req.Published != nil {
		project.SetPublished(*req.Published)
	}

	if err := h.projectStore.Update(r.Context(), project); err != nil {
		status := MapErrorToStatusCode(err)
		msg := "Failed to update project"
		if status == http.StatusConflict {
			msg = "A project with this title already exists"
		}
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProjectResponse(project))
}

// Delete handles DELETE /api/admin/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.projectStore.Delete(r.Context(), id); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, "Failed to delete project", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// newProjectListResponse builds a listing page from domain projects.
func newProjectListResponse(projects []*domain.Project, limit, offset int) ProjectListResponse {
	resp := ProjectListResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, newProjectResponse(p))
	}
	return resp
}

// paginationParams parses limit and offset query parameters, clamping them
// to sane bounds.
func paginationParams(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
