package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/store"
)

type PresetsHandler struct {
	store *store.Client
}

func NewPresetsHandler(presets *store.Client) *PresetsHandler {
	return &PresetsHandler{store: presets}
}

// ListPresets godoc
// @Summary     List prompt presets
// @Tags        presets
// @Produce     json
// @Security    Bearer
// @Param       category query string false "social, marketing or ecom"
// @Success     200 {object} models.PresetListResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /presets [get]
func (h *PresetsHandler) ListPresets(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	category := models.PresetCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		badRequest(c, "invalid preset category", nil)
		return
	}

	presets, err := h.store.ListPresets(c.Request.Context(), uid, category)
	if err != nil {
		serverError(c, "failed to load presets", err)
		return
	}
	c.JSON(http.StatusOK, models.PresetListResponse{Presets: presets})
}

// CreatePreset godoc
// @Summary     Create a prompt preset
// @Tags        presets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreatePresetRequest true "Preset"
// @Success     201 {object} models.PromptPreset
// @Failure     400 {object} models.ErrorResponse
// @Router      /presets [post]
func (h *PresetsHandler) CreatePreset(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if !req.Category.Valid() {
		badRequest(c, "invalid preset category", nil)
		return
	}

	preset, err := h.store.CreatePreset(c.Request.Context(), uid, models.PromptPreset{
		Category:    req.Category,
		Platform:    req.Platform,
		ContentType: req.ContentType,
		Prompt:      req.Prompt,
	})
	if err != nil {
		serverError(c, "failed to create preset", err)
		return
	}
	c.JSON(http.StatusCreated, preset)
}

// UpdatePreset godoc
// @Summary     Update a prompt preset
// @Tags        presets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       preset_id path string true "Preset ID"
// @Param       request body models.UpdatePresetRequest true "Changes"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /presets/{preset_id} [patch]
func (h *PresetsHandler) UpdatePreset(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	patch := map[string]any{}
	if req.Category != nil {
		if !req.Category.Valid() {
			badRequest(c, "invalid preset category", nil)
			return
		}
		patch["category"] = string(*req.Category)
	}
	if req.Platform != nil {
		patch["platform"] = *req.Platform
	}
	if req.ContentType != nil {
		patch["content_type"] = *req.ContentType
	}
	if req.Prompt != nil {
		patch["prompt"] = *req.Prompt
	}

	err := h.store.UpdatePreset(c.Request.Context(), uid, c.Param("preset_id"), patch)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "preset not found"})
		return
	}
	if err != nil {
		serverError(c, "failed to update preset", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "preset updated"})
}

// GetCategoryPreset godoc
// @Summary     Get the saved form values for a category
// @Tags        presets
// @Produce     json
// @Security    Bearer
// @Param       category path string true "social, marketing or ecom"
// @Success     200 {object} models.CategoryPreset
// @Failure     404 {object} models.ErrorResponse
// @Router      /presets/category/{category} [get]
func (h *PresetsHandler) GetCategoryPreset(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	preset, err := h.store.GetCategoryPreset(c.Request.Context(), uid, category)
	if err != nil {
		serverError(c, "failed to load preset", err)
		return
	}
	if preset == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "preset not found"})
		return
	}
	c.JSON(http.StatusOK, preset)
}

// SaveCategoryPreset godoc
// @Summary     Save form values for a category
// @Description Merges the values into the saved preset for the category.
// @Tags        presets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       category path string true "social, marketing or ecom"
// @Param       request body models.CategoryPresetRequest true "Values"
// @Success     200 {object} models.CategoryPreset
// @Failure     400 {object} models.ErrorResponse
// @Router      /presets/category/{category} [put]
func (h *PresetsHandler) SaveCategoryPreset(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	var req models.CategoryPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	preset, err := h.store.SaveCategoryPreset(c.Request.Context(), uid, category, req.Values)
	if err != nil {
		serverError(c, "failed to save preset", err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

func categoryParam(c *gin.Context) (models.PresetCategory, bool) {
	category := models.PresetCategory(c.Param("category"))
	if !category.Valid() {
		badRequest(c, "invalid preset category", nil)
		return "", false
	}
	return category, true
}
