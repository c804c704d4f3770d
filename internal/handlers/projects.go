package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/services"
	"marketing-studio-backend/internal/store"
)

type ProjectsHandler struct {
	store       *store.Client
	generations *services.GenerationService
}

func NewProjectsHandler(projects *store.Client, generations *services.GenerationService) *ProjectsHandler {
	return &ProjectsHandler{
		store:       projects,
		generations: generations,
	}
}

// CreateProject godoc
// @Summary     Create a project
// @Description Creates a project owned by the caller. Client defaults to "" and tags to [].
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Project"
// @Success     201 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		badRequest(c, "project name is required", nil)
		return
	}

	project, err := h.store.CreateProject(c.Request.Context(), uid, name, req.Client, req.Tags)
	if err != nil {
		serverError(c, "failed to create project", err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
// @Summary     List projects
// @Description Lists the caller's active (or archived) projects, most recently updated first.
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       archived query bool false "List archived projects"
// @Success     200 {object} models.ProjectListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	archived, err := archivedParam(c)
	if err != nil {
		badRequest(c, "invalid archived parameter", err)
		return
	}

	projects, err := h.store.ListProjectsByOwner(c.Request.Context(), uid, archived)
	if err != nil {
		serverError(c, "failed to load projects", err)
		return
	}
	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projects})
}

// GetProject godoc
// @Summary     Get a project
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Success     200 {object} models.Project
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary     Rename or archive a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       request body models.UpdateProjectRequest true "Changes"
// @Success     200 {object} models.Project
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [patch]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		badRequest(c, "project name cannot be empty", nil)
		return
	}

	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if req.Name != nil {
		if err := h.store.RenameProject(ctx, project.ID, strings.TrimSpace(*req.Name)); err != nil {
			h.writeFailure(c, "failed to update project", err)
			return
		}
	}
	if req.Archived != nil {
		if err := h.store.ArchiveProject(ctx, project.ID, *req.Archived); err != nil {
			h.writeFailure(c, "failed to update project", err)
			return
		}
	}

	h.respondWithProject(c, uid, project.ID, "updated")
}

// ArchiveProject godoc
// @Summary     Archive or restore a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       request body models.ArchiveProjectRequest false "Defaults to archived=true"
// @Success     200 {object} models.Project
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/archive [post]
func (h *ProjectsHandler) ArchiveProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	req := models.ArchiveProjectRequest{Archived: true}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body", err)
			return
		}
	}

	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}
	if err := h.store.ArchiveProject(c.Request.Context(), project.ID, req.Archived); err != nil {
		h.writeFailure(c, "failed to archive project", err)
		return
	}

	h.respondWithProject(c, uid, project.ID, "archived")
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Deletes the project, its gallery generations and stored images.
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.DeleteProject(ctx, project.ID); err != nil {
		h.writeFailure(c, "failed to delete project", err)
		return
	}
	if h.generations != nil {
		if err := h.generations.RemoveProject(ctx, uid, project.ID); err != nil {
			_ = c.Error(err)
		}
		h.generations.Notify(ctx, uid, project.ID, "deleted")
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "project deleted"})
}

func (h *ProjectsHandler) respondWithProject(c *gin.Context, uid, projectID, reason string) {
	ctx := c.Request.Context()
	updated, err := h.store.GetProject(ctx, projectID)
	if err != nil || updated == nil {
		serverError(c, "failed to get project", err)
		return
	}
	if h.generations != nil {
		h.generations.Notify(ctx, uid, projectID, reason)
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProjectsHandler) writeFailure(c *gin.Context, errMsg string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}
	serverError(c, errMsg, err)
}

func archivedParam(c *gin.Context) (bool, error) {
	raw := c.Query("archived")
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
