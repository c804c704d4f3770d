// Package gallery keeps each user's generated images grouped by prompt.
// The whole collection is one JSON document that is read and rewritten in
// full on every mutation.
package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"marketing-studio-backend/internal/models"
)

// StorageKey is the fixed key of the collection document.
const StorageKey = "local-generations-v2"

// Blob persists one opaque document per key. Load returns nil, nil for a
// key that was never saved.
type Blob interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Updater is implemented by blobs that can run a read-modify-write cycle
// atomically against writers in other processes. fn receives the current
// document and returns the replacement, or nil to leave it untouched. fn may
// be called more than once.
type Updater interface {
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
}

type Store struct {
	blob   Blob
	logger *slog.Logger
	now    func() time.Time

	// mu serializes read-modify-write cycles within this process. Blobs that
	// implement Updater also guard against other processes.
	mu sync.Mutex
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(blob Blob, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{blob: blob, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func userKey(uid string) string {
	return StorageKey + ":" + uid
}

// NewGeneration describes a generation to save. ID is optional.
type NewGeneration struct {
	ID        string
	ProjectID string
	Prompt    string
	Mode      models.GenMode
	Images    []models.LocalImageItem
}

func (s *Store) SaveGeneration(ctx context.Context, uid string, in NewGeneration) (*models.LocalGeneration, error) {
	if !in.Mode.Valid() {
		return nil, fmt.Errorf("invalid generation mode %q", in.Mode)
	}

	gen := models.LocalGeneration{
		ID:        in.ID,
		ProjectID: in.ProjectID,
		Prompt:    in.Prompt,
		Mode:      in.Mode,
		CreatedAt: s.now().UnixMilli(),
		Images:    withImageIDs(nil, in.Images),
	}
	if gen.ID == "" {
		gen.ID = uuid.NewString()
	}

	err := s.mutate(ctx, uid, func(all []models.LocalGeneration) ([]models.LocalGeneration, bool) {
		return append(all, gen), true
	})
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

// AppendImages adds images to an existing generation. An unknown generation
// is ignored and reported as false.
func (s *Store) AppendImages(ctx context.Context, uid, generationID string, images []models.LocalImageItem) (bool, error) {
	var found bool
	err := s.mutate(ctx, uid, func(all []models.LocalGeneration) ([]models.LocalGeneration, bool) {
		ix := indexOf(all, func(g models.LocalGeneration) bool { return g.ID == generationID })
		found = ix != -1
		if !found {
			return all, false
		}
		all[ix].Images = append(all[ix].Images, withImageIDs(all[ix].Images, images)...)
		return all, true
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetGeneration returns nil, nil when the generation is not in the project.
func (s *Store) GetGeneration(ctx context.Context, uid, projectID, generationID string) (*models.LocalGeneration, error) {
	s.mu.Lock()
	all, err := s.loadAll(ctx, uid)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, g := range all {
		if g.ProjectID == projectID && g.ID == generationID {
			return &g, nil
		}
	}
	return nil, nil
}

// ListGenerations returns the project's generations, newest first.
func (s *Store) ListGenerations(ctx context.Context, uid, projectID string) ([]models.LocalGeneration, error) {
	s.mu.Lock()
	all, err := s.loadAll(ctx, uid)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	gens := make([]models.LocalGeneration, 0, len(all))
	for _, g := range all {
		if g.ProjectID == projectID {
			gens = append(gens, g)
		}
	}
	sort.SliceStable(gens, func(i, j int) bool {
		return gens[i].CreatedAt > gens[j].CreatedAt
	})
	return gens, nil
}

// ListImagesByProject flattens the project's generations into one row per
// image. Newer generations come first; images keep their append order.
func (s *Store) ListImagesByProject(ctx context.Context, uid, projectID string) ([]models.ProjectImageFlat, error) {
	gens, err := s.ListGenerations(ctx, uid, projectID)
	if err != nil {
		return nil, err
	}

	flat := make([]models.ProjectImageFlat, 0)
	for _, g := range gens {
		for _, img := range g.Images {
			flat = append(flat, models.ProjectImageFlat{
				GenID:     g.ID,
				Prompt:    g.Prompt,
				Mode:      g.Mode,
				CreatedAt: g.CreatedAt,
				Image:     img,
			})
		}
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].CreatedAt > flat[j].CreatedAt
	})
	return flat, nil
}

// RemoveImage deletes one image and returns it, or nil if nothing matched.
func (s *Store) RemoveImage(ctx context.Context, uid, projectID, generationID, imageID string) (*models.LocalImageItem, error) {
	var removed *models.LocalImageItem
	err := s.mutate(ctx, uid, func(all []models.LocalGeneration) ([]models.LocalGeneration, bool) {
		removed = nil
		gi := indexOf(all, func(g models.LocalGeneration) bool {
			return g.ProjectID == projectID && g.ID == generationID
		})
		if gi == -1 {
			return all, false
		}

		kept := all[gi].Images[:0:0]
		for _, img := range all[gi].Images {
			if img.ID == imageID {
				img := img
				removed = &img
				continue
			}
			kept = append(kept, img)
		}
		all[gi].Images = kept
		return all, removed != nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// RemoveGeneration deletes a generation and returns it, or nil if nothing matched.
func (s *Store) RemoveGeneration(ctx context.Context, uid, projectID, generationID string) (*models.LocalGeneration, error) {
	removed, err := s.removeWhere(ctx, uid, func(g models.LocalGeneration) bool {
		return g.ProjectID == projectID && g.ID == generationID
	})
	if err != nil || len(removed) == 0 {
		return nil, err
	}
	return &removed[0], nil
}

// RemoveProject deletes every generation of a project.
func (s *Store) RemoveProject(ctx context.Context, uid, projectID string) ([]models.LocalGeneration, error) {
	return s.removeWhere(ctx, uid, func(g models.LocalGeneration) bool {
		return g.ProjectID == projectID
	})
}

func (s *Store) removeWhere(ctx context.Context, uid string, match func(models.LocalGeneration) bool) ([]models.LocalGeneration, error) {
	var removed []models.LocalGeneration
	err := s.mutate(ctx, uid, func(all []models.LocalGeneration) ([]models.LocalGeneration, bool) {
		removed = nil
		kept := make([]models.LocalGeneration, 0, len(all))
		for _, g := range all {
			if match(g) {
				removed = append(removed, g)
				continue
			}
			kept = append(kept, g)
		}
		return kept, len(removed) > 0
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) loadAll(ctx context.Context, uid string) ([]models.LocalGeneration, error) {
	raw, err := s.blob.Load(ctx, userKey(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}
	return s.decode(uid, raw), nil
}

func (s *Store) decode(uid string, raw []byte) []models.LocalGeneration {
	if len(raw) == 0 {
		return []models.LocalGeneration{}
	}
	var all []models.LocalGeneration
	if err := json.Unmarshal(raw, &all); err != nil {
		s.logger.Warn("discarding unreadable gallery document", "user_id", uid, "error", err)
		return []models.LocalGeneration{}
	}
	return all
}

// mutate runs fn over the user's collection and writes the result back when
// fn reports a change.
func (s *Store) mutate(ctx context.Context, uid string, fn func([]models.LocalGeneration) ([]models.LocalGeneration, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply := func(raw []byte) ([]byte, error) {
		next, changed := fn(s.decode(uid, raw))
		if !changed {
			return nil, nil
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode gallery: %w", err)
		}
		return data, nil
	}

	if u, ok := s.blob.(Updater); ok {
		if err := u.Update(ctx, userKey(uid), apply); err != nil {
			return fmt.Errorf("failed to update gallery: %w", err)
		}
		return nil
	}

	raw, err := s.blob.Load(ctx, userKey(uid))
	if err != nil {
		return fmt.Errorf("failed to load gallery: %w", err)
	}
	data, err := apply(raw)
	if err != nil || data == nil {
		return err
	}
	if err := s.blob.Save(ctx, userKey(uid), data); err != nil {
		return fmt.Errorf("failed to save gallery: %w", err)
	}
	return nil
}

// withImageIDs assigns ids to images so that every id is unique within the
// generation. Missing ids and ids already taken by existing images or earlier
// entries get a fresh one.
func withImageIDs(existing, images []models.LocalImageItem) []models.LocalImageItem {
	taken := make(map[string]struct{}, len(existing)+len(images))
	for _, img := range existing {
		taken[img.ID] = struct{}{}
	}
	out := make([]models.LocalImageItem, len(images))
	for i, img := range images {
		if _, dup := taken[img.ID]; img.ID == "" || dup {
			img.ID = uuid.NewString()
		}
		taken[img.ID] = struct{}{}
		out[i] = img
	}
	return out
}

func indexOf(all []models.LocalGeneration, match func(models.LocalGeneration) bool) int {
	for i, g := range all {
		if match(g) {
			return i
		}
	}
	return -1
}
