package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/imagegen"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/services"
	"marketing-studio-backend/internal/store"
)

// GenerationFailedMessage is shown for every failed generation.
const GenerationFailedMessage = "Error generating content. Please try again."

type GenerateHandler struct {
	store       *store.Client
	generations *services.GenerationService
}

func NewGenerateHandler(projects *store.Client, generations *services.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		store:       projects,
		generations: generations,
	}
}

// ListOperations godoc
// @Summary     List generation operations
// @Description Operation types accepted by the generate endpoint.
// @Tags        generate
// @Produce     json
// @Security    Bearer
// @Success     200 {array} models.OperationInfo
// @Router      /operations [get]
func (h *GenerateHandler) ListOperations(c *gin.Context) {
	ops := make([]models.OperationInfo, len(imagegen.Operations))
	for i, op := range imagegen.Operations {
		ops[i] = models.OperationInfo{
			OperationType: op.Type,
			Description:   op.Description,
			RequiresPhoto: op.RequiresPhoto,
		}
	}
	c.JSON(http.StatusOK, ops)
}

// Generate godoc
// @Summary     Generate content for a project
// @Description Runs one generation and records it in the project's gallery. Send JSON, or multipart form data with an "operation_type" field, the operation's fields and a "photo" file.
// @Tags        generate
// @Accept      json,mpfd
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID"
// @Param       request body models.GenerateRequest false "JSON request"
// @Param       photo formData file false "Source photo"
// @Success     200 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /projects/{project_id}/generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	req, err := bindGenerateRequest(c)
	if err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	project, ok := ownedProject(c, h.store, uid)
	if !ok {
		return
	}

	resp, err := h.generations.Submit(c.Request.Context(), uid, project.ID, req)
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		badRequest(c, "invalid generation request", err)
	case errors.Is(err, imagegen.ErrGenerationFailed):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: GenerationFailedMessage})
	case err != nil:
		serverError(c, GenerationFailedMessage, err)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

func bindGenerateRequest(c *gin.Context) (imagegen.Request, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var body models.GenerateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			return imagegen.Request{}, err
		}
		return imagegen.Request{OperationType: body.OperationType, Fields: body.Fields}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return imagegen.Request{}, err
	}

	req := imagegen.Request{Fields: map[string]string{}}
	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "operation_type", "operationType":
			req.OperationType = values[0]
		default:
			req.Fields[key] = values[0]
		}
	}

	if files := form.File["photo"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return imagegen.Request{}, err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
		if err != nil {
			return imagegen.Request{}, err
		}
		req.Photo = &imagegen.Photo{
			Filename:    files[0].Filename,
			ContentType: files[0].Header.Get("Content-Type"),
			Data:        data,
		}
	}
	return req, nil
}
