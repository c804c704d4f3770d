package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/dashboard"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/store"
)

type DashboardHandler struct {
	store    *store.Client
	sessions *dashboard.Registry
	now      func() time.Time
}

func NewDashboardHandler(projects *store.Client, sessions *dashboard.Registry) *DashboardHandler {
	return &DashboardHandler{store: projects, sessions: sessions, now: time.Now}
}

func filtersResponse(s dashboard.FilterState) models.DashboardFilters {
	return models.DashboardFilters{
		Query:         s.Query,
		Tags:          s.Tags,
		DateSort:      string(s.DateSort),
		AvailableTags: s.AvailableTags,
	}
}

// GetFilters godoc
// @Summary     Get dashboard filters
// @Tags        dashboard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.DashboardFilters
// @Router      /dashboard/filters [get]
func (h *DashboardHandler) GetFilters(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, filtersResponse(h.sessions.Session(uid).Filters.Snapshot()))
}

// PatchFilters godoc
// @Summary     Update dashboard filters
// @Description Omitted fields are unchanged. Tags accept a list, a JSON-encoded list or a single tag; anything unusable resets to ["All"].
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.FiltersPatchRequest true "Changes"
// @Success     200 {object} models.DashboardFilters
// @Failure     400 {object} models.ErrorResponse
// @Router      /dashboard/filters [patch]
func (h *DashboardHandler) PatchFilters(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.FiltersPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	var sort dashboard.DateSort
	if req.DateSort != nil {
		var err error
		if sort, err = dashboard.ParseDateSort(*req.DateSort); err != nil {
			badRequest(c, "date_sort must be newest, oldest, 7d or 30d", err)
			return
		}
	}

	filters := h.sessions.Session(uid).Filters
	if req.Query != nil {
		filters.SetQuery(*req.Query)
	}
	if req.Tags != nil {
		filters.SetTags(req.Tags)
	}
	if req.DateSort != nil {
		if err := filters.SetDateSort(sort); err != nil {
			serverError(c, "failed to update filters", err)
			return
		}
	}

	c.JSON(http.StatusOK, filtersResponse(filters.Snapshot()))
}

// ToggleTag godoc
// @Summary     Toggle one tag in the selection
// @Description "All" resets the selection. Removing the last tag selects "All".
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ToggleTagRequest true "Tag"
// @Success     200 {object} models.DashboardFilters
// @Failure     400 {object} models.ErrorResponse
// @Router      /dashboard/tags/toggle [post]
func (h *DashboardHandler) ToggleTag(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.ToggleTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	filters := h.sessions.Session(uid).Filters
	filters.ToggleTag(req.Tag)
	c.JSON(http.StatusOK, filtersResponse(filters.Snapshot()))
}

// Projects godoc
// @Summary     Visible dashboard projects
// @Description Fetches the caller's projects and applies the session filters. A response overtaken by a newer fetch is marked stale and shows the newer result.
// @Tags        dashboard
// @Produce     json
// @Security    Bearer
// @Param       archived query bool false "Archived partition"
// @Success     200 {object} models.DashboardProjectsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /dashboard/projects [get]
func (h *DashboardHandler) Projects(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	archived, err := archivedParam(c)
	if err != nil {
		badRequest(c, "invalid archived parameter", err)
		return
	}

	session := h.sessions.Session(uid)
	token := session.BeginFetch(archived)

	projects, err := h.store.ListProjectsByOwner(c.Request.Context(), uid, archived)
	if err != nil {
		serverError(c, "failed to load projects", err)
		return
	}
	applied := session.CommitFetch(archived, token, projects)

	c.JSON(http.StatusOK, models.DashboardProjectsResponse{
		Projects: session.Visible(archived, h.now()),
		Filters:  filtersResponse(session.Filters.Snapshot()),
		Stale:    !applied,
	})
}
