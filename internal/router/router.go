// Package router wires the API routes and middleware chains.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"marketing-studio-backend/internal/config"
	"marketing-studio-backend/internal/handlers"
	"marketing-studio-backend/internal/middleware"
)

// Handlers groups every handler the router serves.
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Projects  *handlers.ProjectsHandler
	Presets   *handlers.PresetsHandler
	Users     *handlers.UsersHandler
	Gallery   *handlers.GalleryHandler
	Generate  *handlers.GenerateHandler
	Dashboard *handlers.DashboardHandler
}

func New(cfg *config.Config, logger *slog.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	r.GET("/health", h.Health.Health)

	api := r.Group("/api/v1")

	// Account routes that run before a session exists.
	api.POST("/auth/signup", h.Auth.SignUp)
	api.POST("/auth/signin", h.Auth.SignIn)
	api.POST("/auth/reset", h.Auth.ResetPassword)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))

	authed.POST("/auth/signout", h.Auth.SignOut)

	// Projects
	authed.POST("/projects", h.Projects.CreateProject)
	authed.GET("/projects", h.Projects.ListProjects)
	authed.GET("/projects/:project_id", h.Projects.GetProject)
	authed.PATCH("/projects/:project_id", h.Projects.UpdateProject)
	authed.POST("/projects/:project_id/archive", h.Projects.ArchiveProject)
	authed.DELETE("/projects/:project_id", h.Projects.DeleteProject)

	// Generation and gallery
	authed.GET("/operations", h.Generate.ListOperations)
	authed.POST("/projects/:project_id/generate", h.Generate.Generate)
	authed.GET("/projects/:project_id/generations", h.Gallery.ListGenerations)
	authed.POST("/projects/:project_id/generations", h.Gallery.SaveGeneration)
	authed.DELETE("/projects/:project_id/generations/:generation_id", h.Gallery.DeleteGeneration)
	authed.POST("/projects/:project_id/generations/:generation_id/images", h.Gallery.AddImages)
	authed.DELETE("/projects/:project_id/generations/:generation_id/images/:image_id", h.Gallery.DeleteImage)
	authed.GET("/projects/:project_id/images", h.Gallery.ListImages)

	// Presets
	authed.GET("/presets", h.Presets.ListPresets)
	authed.POST("/presets", h.Presets.CreatePreset)
	authed.PATCH("/presets/:preset_id", h.Presets.UpdatePreset)
	authed.GET("/presets/category/:category", h.Presets.GetCategoryPreset)
	authed.PUT("/presets/category/:category", h.Presets.SaveCategoryPreset)

	// Profile
	authed.GET("/me", h.Users.GetMe)
	authed.PATCH("/me", h.Users.UpdateMe)
	authed.PUT("/me/theme", h.Users.SetTheme)
	authed.GET("/me/openrouter-key", h.Users.GetOpenRouterKey)
	authed.PUT("/me/openrouter-key", h.Users.SetOpenRouterKey)

	// Dashboard
	authed.GET("/dashboard/filters", h.Dashboard.GetFilters)
	authed.PATCH("/dashboard/filters", h.Dashboard.PatchFilters)
	authed.POST("/dashboard/tags/toggle", h.Dashboard.ToggleTag)
	authed.GET("/dashboard/projects", h.Dashboard.Projects)

	return r
}
