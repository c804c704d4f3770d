package store

import (
	"context"
	"fmt"

	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/sanitize"
)

// ListPresets returns the user's presets, newest first. An empty category
// lists every category.
func (c *Client) ListPresets(ctx context.Context, uid string, category models.PresetCategory) ([]models.PromptPreset, error) {
	filters := []Filter{{Field: "owner_id", Value: uid}}
	if category != "" {
		filters = append(filters, Filter{Field: "category", Value: string(category)})
	}

	var presets []models.PromptPreset
	err := c.backend.Find(ctx, Query{
		Table:   models.PresetsTable,
		Filters: filters,
		OrderBy: "updated_at",
		Desc:    true,
	}, &presets)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	if presets == nil {
		presets = []models.PromptPreset{}
	}
	return presets, nil
}

func (c *Client) CreatePreset(ctx context.Context, uid string, preset models.PromptPreset) (*models.PromptPreset, error) {
	now := c.nowMillis()
	preset.OwnerID = uid
	preset.CreatedAt = now
	preset.UpdatedAt = now

	doc := sanitize.Map(map[string]any{
		"owner_id":     preset.OwnerID,
		"category":     string(preset.Category),
		"platform":     preset.Platform,
		"content_type": preset.ContentType,
		"prompt":       preset.Prompt,
		"created_at":   preset.CreatedAt,
		"updated_at":   preset.UpdatedAt,
	})

	id, err := c.backend.Insert(ctx, models.PresetsTable, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}
	preset.ID = id
	return &preset, nil
}

// UpdatePreset applies a partial patch to a preset owned by uid.
func (c *Client) UpdatePreset(ctx context.Context, uid, id string, patch map[string]any) error {
	var presets []models.PromptPreset
	err := c.backend.Find(ctx, Query{
		Table: models.PresetsTable,
		Filters: []Filter{
			{Field: "id", Value: id},
			{Field: "owner_id", Value: uid},
		},
		Limit: 1,
	}, &presets)
	if err != nil {
		return fmt.Errorf("failed to load preset: %w", err)
	}
	if len(presets) == 0 {
		return fmt.Errorf("failed to update preset %s: %w", id, ErrNotFound)
	}

	clean := sanitize.Map(patch)
	delete(clean, "id")
	delete(clean, "owner_id")
	delete(clean, "created_at")
	clean["updated_at"] = c.nowMillis()

	if err := c.backend.Update(ctx, models.PresetsTable, id, clean); err != nil {
		return fmt.Errorf("failed to update preset: %w", err)
	}
	return nil
}

func categoryPresetID(uid string, category models.PresetCategory) string {
	return uid + ":" + string(category)
}

// GetCategoryPreset returns nil, nil when nothing was saved for the category.
func (c *Client) GetCategoryPreset(ctx context.Context, uid string, category models.PresetCategory) (*models.CategoryPreset, error) {
	var presets []models.CategoryPreset
	err := c.backend.Find(ctx, Query{
		Table:   models.CategoryPresetsTable,
		Filters: []Filter{{Field: "id", Value: categoryPresetID(uid, category)}},
		Limit:   1,
	}, &presets)
	if err != nil {
		return nil, fmt.Errorf("failed to get category preset: %w", err)
	}
	if len(presets) == 0 {
		return nil, nil
	}
	return &presets[0], nil
}

// SaveCategoryPreset merges values into the saved preset for the category.
func (c *Client) SaveCategoryPreset(ctx context.Context, uid string, category models.PresetCategory, values map[string]any) (*models.CategoryPreset, error) {
	existing, err := c.GetCategoryPreset(ctx, uid, category)
	if err != nil {
		return nil, err
	}

	merged := map[string]any{}
	if existing != nil {
		for k, v := range existing.Values {
			merged[k] = v
		}
	}
	for k, v := range values {
		merged[k] = v
	}

	preset := models.CategoryPreset{
		ID:        categoryPresetID(uid, category),
		OwnerID:   uid,
		Category:  category,
		Values:    sanitize.Map(merged),
		UpdatedAt: c.nowMillis(),
	}
	doc := sanitize.Map(map[string]any{
		"owner_id":   preset.OwnerID,
		"category":   string(preset.Category),
		"values":     preset.Values,
		"updated_at": preset.UpdatedAt,
	})
	if err := c.backend.Upsert(ctx, models.CategoryPresetsTable, preset.ID, doc); err != nil {
		return nil, fmt.Errorf("failed to save category preset: %w", err)
	}
	return &preset, nil
}
