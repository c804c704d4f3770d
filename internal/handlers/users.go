package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/store"
)

type UsersHandler struct {
	store *store.Client
}

func NewUsersHandler(users *store.Client) *UsersHandler {
	return &UsersHandler{store: users}
}

// GetMe godoc
// @Summary     Get the caller's profile
// @Description Returns the profile, creating it with defaults on first access.
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AppUser
// @Failure     401 {object} models.ErrorResponse
// @Router      /me [get]
func (h *UsersHandler) GetMe(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUser(ctx, uid)
	if err == nil && user == nil {
		user, err = h.store.UpsertUserProfile(ctx, uid, userEmail(c), nil)
	}
	if err != nil {
		serverError(c, "failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary     Update the caller's profile
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateProfileRequest true "Changes"
// @Success     200 {object} models.AppUser
// @Failure     400 {object} models.ErrorResponse
// @Router      /me [patch]
func (h *UsersHandler) UpdateMe(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	patch := map[string]any{}
	if req.DisplayName != nil {
		patch["display_name"] = *req.DisplayName
	}
	if req.PhotoURL != nil {
		if *req.PhotoURL == "" {
			patch["photo_url"] = nil
		} else {
			patch["photo_url"] = *req.PhotoURL
		}
	}

	user, err := h.store.UpsertUserProfile(c.Request.Context(), uid, userEmail(c), patch)
	if err != nil {
		serverError(c, "failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetTheme godoc
// @Summary     Set the UI theme
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ThemeRequest true "light or dark"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /me/theme [put]
func (h *UsersHandler) SetTheme(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if req.Theme != models.ThemeLight && req.Theme != models.ThemeDark {
		badRequest(c, "theme must be light or dark", nil)
		return
	}

	if err := h.store.SetUserTheme(c.Request.Context(), uid, req.Theme); err != nil {
		serverError(c, "failed to save theme", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "theme updated"})
}

// GetOpenRouterKey godoc
// @Summary     Get the stored OpenRouter key
// @Tags        users
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OpenRouterKeyResponse
// @Router      /me/openrouter-key [get]
func (h *UsersHandler) GetOpenRouterKey(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	key, err := h.store.GetOpenRouterKey(c.Request.Context(), uid)
	if err != nil {
		serverError(c, "failed to load key", err)
		return
	}
	c.JSON(http.StatusOK, models.OpenRouterKeyResponse{Key: key, HasKey: key != ""})
}

// SetOpenRouterKey godoc
// @Summary     Store or clear the OpenRouter key
// @Description A blank key clears the stored value.
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.OpenRouterKeyRequest true "Key"
// @Success     200 {object} models.MessageResponse
// @Router      /me/openrouter-key [put]
func (h *UsersHandler) SetOpenRouterKey(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.OpenRouterKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	if err := h.store.SetOpenRouterKey(c.Request.Context(), uid, req.Key); err != nil {
		serverError(c, "failed to save key", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "key updated"})
}
