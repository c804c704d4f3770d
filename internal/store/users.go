package store

import (
	"context"
	"fmt"
	"strings"

	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/sanitize"
)

// GetUser returns nil, nil for a user without a profile document.
func (c *Client) GetUser(ctx context.Context, uid string) (*models.AppUser, error) {
	var users []models.AppUser
	err := c.backend.Find(ctx, Query{
		Table:   models.UsersTable,
		Filters: []Filter{{Field: "id", Value: uid}},
		Limit:   1,
	}, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// UpsertUserProfile creates the profile with defaults on first use and merges
// patch into it otherwise.
func (c *Client) UpsertUserProfile(ctx context.Context, uid, email string, patch map[string]any) (*models.AppUser, error) {
	existing, err := c.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := c.nowMillis()
	doc := map[string]any{}
	if existing == nil {
		doc = map[string]any{
			"email":          email,
			"display_name":   "",
			"photo_url":      nil,
			"plan":           models.PlanFree,
			"theme":          string(models.ThemeLight),
			"openrouter_key": nil,
			"created_at":     now,
		}
	}
	for k, v := range patch {
		doc[k] = v
	}
	delete(doc, "id")
	if existing == nil {
		doc["plan"] = models.PlanFree
	} else {
		delete(doc, "plan")
	}
	doc["updated_at"] = now

	if err := c.backend.Upsert(ctx, models.UsersTable, uid, sanitize.Map(doc)); err != nil {
		return nil, fmt.Errorf("failed to save user profile: %w", err)
	}
	return c.GetUser(ctx, uid)
}

func (c *Client) SetUserTheme(ctx context.Context, uid string, theme models.Theme) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("invalid theme %q", theme)
	}
	_, err := c.UpsertUserProfile(ctx, uid, "", map[string]any{"theme": string(theme)})
	return err
}

// SetOpenRouterKey stores the trimmed key; a blank key clears it.
func (c *Client) SetOpenRouterKey(ctx context.Context, uid, key string) error {
	var value any
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		value = trimmed
	}
	_, err := c.UpsertUserProfile(ctx, uid, "", map[string]any{"openrouter_key": value})
	return err
}

func (c *Client) GetOpenRouterKey(ctx context.Context, uid string) (string, error) {
	user, err := c.GetUser(ctx, uid)
	if err != nil {
		return "", err
	}
	if user == nil || user.OpenRouterKey == nil {
		return "", nil
	}
	return strings.TrimSpace(*user.OpenRouterKey), nil
}
