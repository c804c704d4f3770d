package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/middleware"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/store"
)

// userID returns the authenticated user, writing a 401 when there is none.
func userID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	uid, _ := v.(string)
	if !exists || uid == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return "", false
	}
	return uid, true
}

func userEmail(c *gin.Context) string {
	return c.GetString(middleware.EmailKey)
}

// ownedProject loads the path project and checks it belongs to uid. Missing
// and foreign projects both answer 404.
func ownedProject(c *gin.Context, projects *store.Client, uid string) (*models.Project, bool) {
	projectID := c.Param("project_id")
	project, err := projects.GetProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get project"})
		return nil, false
	}
	if project == nil || project.OwnerID != uid {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return nil, false
	}
	return project, true
}

func badRequest(c *gin.Context, errMsg string, err error) {
	resp := models.ErrorResponse{Error: errMsg}
	if err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func serverError(c *gin.Context, errMsg string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errMsg})
}
