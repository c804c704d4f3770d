package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"marketing-studio-backend/internal/gallery"
	"marketing-studio-backend/internal/imagegen"
	"marketing-studio-backend/internal/imaging"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/supabase"
)

var (
	ErrInvalidRequest     = errors.New("invalid generation request")
	ErrGenerationNotFound = errors.New("generation not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrInvalidImage       = errors.New("invalid image")
)

type Generator interface {
	Generate(ctx context.Context, req imagegen.Request) (*imagegen.Result, error)
}

// AssetStore holds image payloads. *supabase.StorageClient implements it.
type AssetStore interface {
	Upload(storagePath, contentType string, data []byte) (string, error)
	Remove(storagePaths ...string) error
	RemovePrefix(prefix string) error
	PathFromURL(publicURL string) (string, bool)
}

// Notifier tells subscribed clients to refetch. *supabase.RealtimeClient
// implements it.
type Notifier interface {
	PublishUserEvent(ctx context.Context, userID, event string, payload map[string]any) error
}

type ProjectCounter interface {
	RecordGeneration(ctx context.Context, projectID string) error
}

type GenerationService struct {
	generator Generator
	gallery   *gallery.Store
	projects  ProjectCounter
	assets    AssetStore
	notifier  Notifier
	logger    *slog.Logger
}

// NewGenerationService wires the generation flow. assets and notifier may be
// nil; images are then inlined as data URLs and no events are sent.
func NewGenerationService(
	generator Generator,
	galleryStore *gallery.Store,
	projects ProjectCounter,
	assets AssetStore,
	notifier Notifier,
	logger *slog.Logger,
) *GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationService{
		generator: generator,
		gallery:   galleryStore,
		projects:  projects,
		assets:    assets,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit runs one generation and records it in the user's gallery. Any
// failure of the remote endpoint is reported as imagegen.ErrGenerationFailed.
func (s *GenerationService) Submit(ctx context.Context, uid, projectID string, req imagegen.Request) (*models.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Error("generation failed", "user_id", uid, "project_id", projectID, "operation", req.OperationType, "error", err)
		if !errors.Is(err, imagegen.ErrGenerationFailed) {
			err = fmt.Errorf("%w: %v", imagegen.ErrGenerationFailed, err)
		}
		return nil, err
	}

	mode := models.GenModeT2I
	if req.Photo != nil {
		mode = models.GenModeI2I
	}

	var images []models.LocalImageItem
	if url := result.ImageURL(); url != "" {
		meta := map[string]any{"operation_type": req.OperationType}
		if result.FileID != "" {
			meta["file_id"] = result.FileID
		}
		images = append(images, models.LocalImageItem{DataURL: url, Meta: meta})
	}

	gen, err := s.gallery.SaveGeneration(ctx, uid, gallery.NewGeneration{
		ProjectID: projectID,
		Prompt:    imagegen.BuildPrompt(req),
		Mode:      mode,
		Images:    images,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save generation: %w", err)
	}

	if err := s.projects.RecordGeneration(ctx, projectID); err != nil {
		s.logger.Warn("failed to update generation count", "project_id", projectID, "error", err)
	}
	s.notify(ctx, uid, projectID, "generation")

	output := result.ImageURL()
	if output == "" {
		output = result.Text()
	}
	return &models.GenerateResponse{
		Generation: *gen,
		Output:     output,
		FileID:     result.FileID,
	}, nil
}

// AttachImage adds an uploaded image, with a generated thumbnail, to an
// existing generation.
func (s *GenerationService) AttachImage(ctx context.Context, uid, projectID, generationID, filename string, data []byte) (*models.LocalImageItem, error) {
	gen, err := s.gallery.GetGeneration(ctx, uid, projectID, generationID)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, ErrGenerationNotFound
	}

	thumb, err := imaging.Thumbnail(data, imaging.DefaultThumbSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	contentType := http.DetectContentType(data)
	item := models.LocalImageItem{
		ID: uuid.NewString(),
		Meta: map[string]any{
			"filename":     filepath.Base(filename),
			"content_type": contentType,
			"size":         len(data),
		},
	}

	if s.assets != nil {
		ext := extensionFor(filename, contentType)
		item.DataURL, err = s.assets.Upload(supabase.AssetPath(uid, projectID, generationID, item.ID+ext), contentType, data)
		if err != nil {
			return nil, err
		}
		item.ThumbURL, err = s.assets.Upload(supabase.AssetPath(uid, projectID, generationID, item.ID+"_thumb.jpg"), "image/jpeg", thumb)
		if err != nil {
			s.removeAssets(item.DataURL)
			return nil, err
		}
	} else {
		item.DataURL = imaging.DataURL(contentType, data)
		item.ThumbURL = imaging.DataURL("image/jpeg", thumb)
	}

	ok, err := s.gallery.AppendImages(ctx, uid, generationID, []models.LocalImageItem{item})
	if err != nil || !ok {
		s.removeAssets(item.DataURL, item.ThumbURL)
		if err != nil {
			return nil, err
		}
		return nil, ErrGenerationNotFound
	}

	s.notify(ctx, uid, projectID, "image")
	return &item, nil
}

func (s *GenerationService) RemoveImage(ctx context.Context, uid, projectID, generationID, imageID string) error {
	removed, err := s.gallery.RemoveImage(ctx, uid, projectID, generationID, imageID)
	if err != nil {
		return err
	}
	if removed == nil {
		return ErrImageNotFound
	}
	s.removeAssets(removed.DataURL, removed.ThumbURL)
	s.notify(ctx, uid, projectID, "image_removed")
	return nil
}

func (s *GenerationService) RemoveGeneration(ctx context.Context, uid, projectID, generationID string) error {
	removed, err := s.gallery.RemoveGeneration(ctx, uid, projectID, generationID)
	if err != nil {
		return err
	}
	if removed == nil {
		return ErrGenerationNotFound
	}
	s.removePrefix(supabase.GenerationPrefix(uid, projectID, generationID))
	s.notify(ctx, uid, projectID, "generation_removed")
	return nil
}

// RemoveProject drops every generation of a project along with its stored
// assets.
func (s *GenerationService) RemoveProject(ctx context.Context, uid, projectID string) error {
	if _, err := s.gallery.RemoveProject(ctx, uid, projectID); err != nil {
		return err
	}
	s.removePrefix(supabase.ProjectPrefix(uid, projectID))
	return nil
}

// Notify broadcasts a refresh for a project change made outside this service.
func (s *GenerationService) Notify(ctx context.Context, uid, projectID, reason string) {
	s.notify(ctx, uid, projectID, reason)
}

func (s *GenerationService) notify(ctx context.Context, uid, projectID, reason string) {
	if s.notifier == nil {
		return
	}
	payload := supabase.ProjectRefreshPayload(projectID, reason)
	if err := s.notifier.PublishUserEvent(ctx, uid, supabase.EventProjectRefresh, payload); err != nil {
		s.logger.Warn("failed to publish refresh", "user_id", uid, "project_id", projectID, "error", err)
	}
}

func (s *GenerationService) removeAssets(urls ...string) {
	if s.assets == nil {
		return
	}
	var paths []string
	for _, u := range urls {
		if p, ok := s.assets.PathFromURL(u); ok {
			paths = append(paths, p)
		}
	}
	if err := s.assets.Remove(paths...); err != nil {
		s.logger.Warn("failed to delete stored images", "paths", paths, "error", err)
	}
}

func (s *GenerationService) removePrefix(prefix string) {
	if s.assets == nil {
		return
	}
	if err := s.assets.RemovePrefix(prefix); err != nil {
		s.logger.Warn("failed to delete stored images", "prefix", prefix, "error", err)
	}
}

func extensionFor(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
