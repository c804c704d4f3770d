package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/gallery"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/services"
	"marketing-studio-backend/internal/store"
)

// maxUploadSize bounds a single attached image.
const maxUploadSize = 20 << 20

type GalleryHandler struct {
	store       *store.Client
	gallery     *gallery.Store
	generations *services.GenerationService
}

func NewGalleryHandler(projects *store.Client, galleryStore *gallery.Store, generations *services.GenerationService) *GalleryHandler {
	return &GalleryHandler{
		store:       projects,
		gallery:     galleryStore,
		generations: generations,
	}
}

func modeParam(c *gin.Context) (string, bool) {
	mode := c.DefaultQuery("mode", gallery.ModeAll)
	if !gallery.ValidMode(mode) {
		badRequest(c, "mode must be all, t2i or i2i", nil)
		return "", false
	}
	return mode, true
}

// ListGenerations godoc
// @Summary     List a project's generations
// @Description Newest first, optionally filtered by mode and a prompt query.
// @Tags        gallery
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       mode query string false "all, t2i or i2i"
// @Param       q query string false "Prompt search"
// @Success     200 {object} models.GenerationListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generations [get]
func (h *GalleryHandler) ListGenerations(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	gens, err := h.gallery.ListGenerations(c.Request.Context(), uid, project.ID)
	if err != nil {
		serverError(c, "failed to load generations", err)
		return
	}
	c.JSON(http.StatusOK, models.GenerationListResponse{
		Generations: gallery.FilterGenerations(gens, mode, c.Query("q")),
	})
}

// SaveGeneration godoc
// @Summary     Save a generation
// @Description Records a generation produced elsewhere, with its images.
// @Tags        gallery
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       request body models.SaveGenerationRequest true "Generation"
// @Success     201 {object} models.LocalGeneration
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generations [post]
func (h *GalleryHandler) SaveGeneration(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.SaveGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if req.Mode == "" {
		req.Mode = models.GenModeT2I
	}
	if !req.Mode.Valid() {
		badRequest(c, "mode must be t2i or i2i", nil)
		return
	}

	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	gen, err := h.gallery.SaveGeneration(ctx, uid, gallery.NewGeneration{
		ProjectID: project.ID,
		Prompt:    req.Prompt,
		Mode:      req.Mode,
		Images:    req.Images,
	})
	if err != nil {
		serverError(c, "failed to save generation", err)
		return
	}
	if err := h.store.RecordGeneration(ctx, project.ID); err != nil {
		_ = c.Error(err)
	}
	h.generations.Notify(ctx, uid, project.ID, "generation")

	c.JSON(http.StatusCreated, gen)
}

// AddImages godoc
// @Summary     Add images to a generation
// @Description Accepts either a multipart upload in the "image" field, which is thumbnailed and stored, or a JSON list of already-hosted images.
// @Tags        gallery
// @Accept      json,mpfd
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       generation_id path string true "Generation ID"
// @Param       image formData file false "Image file"
// @Success     201 {object} models.LocalGeneration
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generations/{generation_id}/images [post]
func (h *GalleryHandler) AddImages(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	generationID := c.Param("generation_id")

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			badRequest(c, "image file is required", err)
			return
		}
		if fileHeader.Size > maxUploadSize {
			badRequest(c, "image is too large", nil)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			badRequest(c, "failed to read image", err)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			badRequest(c, "failed to read image", err)
			return
		}

		if _, err := h.generations.AttachImage(ctx, uid, project.ID, generationID, fileHeader.Filename, data); err != nil {
			h.galleryFailure(c, "failed to add image", err)
			return
		}
	} else {
		var req models.AppendImagesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body", err)
			return
		}

		gen, err := h.gallery.GetGeneration(ctx, uid, project.ID, generationID)
		if err != nil {
			serverError(c, "failed to load generation", err)
			return
		}
		if gen == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "generation not found"})
			return
		}
		if _, err := h.gallery.AppendImages(ctx, uid, generationID, req.Images); err != nil {
			serverError(c, "failed to add images", err)
			return
		}
		h.generations.Notify(ctx, uid, project.ID, "image")
	}

	gen, err := h.gallery.GetGeneration(ctx, uid, project.ID, generationID)
	if err != nil || gen == nil {
		serverError(c, "failed to load generation", err)
		return
	}
	c.JSON(http.StatusCreated, gen)
}

// DeleteGeneration godoc
// @Summary     Delete a generation
// @Tags        gallery
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       generation_id path string true "Generation ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generations/{generation_id} [delete]
func (h *GalleryHandler) DeleteGeneration(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	if err := h.generations.RemoveGeneration(c.Request.Context(), uid, project.ID, c.Param("generation_id")); err != nil {
		h.galleryFailure(c, "failed to delete generation", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "generation deleted"})
}

// ListImages godoc
// @Summary     List a project's images
// @Description One row per image, newest generation first. The query matches prompts, or the project name or client to keep every row.
// @Tags        gallery
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       mode query string false "all, t2i or i2i"
// @Param       q query string false "Search"
// @Success     200 {object} models.ImageListResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/images [get]
func (h *GalleryHandler) ListImages(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	mode, ok := modeParam(c)
	if !ok {
		return
	}
	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	rows, err := h.gallery.ListImagesByProject(c.Request.Context(), uid, project.ID)
	if err != nil {
		serverError(c, "failed to load images", err)
		return
	}
	c.JSON(http.StatusOK, models.ImageListResponse{
		Images: gallery.FilterImages(rows, mode, c.Query("q"), project),
	})
}

// DeleteImage godoc
// @Summary     Delete one image
// @Tags        gallery
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       generation_id path string true "Generation ID"
// @Param       image_id path string true "Image ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generations/{generation_id}/images/{image_id} [delete]
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	err := h.generations.RemoveImage(c.Request.Context(), uid, project.ID, c.Param("generation_id"), c.Param("image_id"))
	if err != nil {
		h.galleryFailure(c, "failed to delete image", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "image deleted"})
}

func (h *GalleryHandler) galleryFailure(c *gin.Context, errMsg string, err error) {
	switch {
	case errors.Is(err, services.ErrGenerationNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "generation not found"})
	case errors.Is(err, services.ErrImageNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
	case errors.Is(err, services.ErrInvalidImage):
		badRequest(c, "unsupported image", err)
	default:
		serverError(c, errMsg, err)
	}
}
