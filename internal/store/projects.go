package store

import (
	"context"
	"fmt"
	"sort"

	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/sanitize"
)

// CreateProject inserts a new project and returns it without reading it back.
func (c *Client) CreateProject(ctx context.Context, ownerID, name string, client *string, tags []string) (*models.Project, error) {
	now := c.nowMillis()
	project := models.Project{
		Name:             name,
		Client:           "",
		Tags:             []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
		TotalGenerations: 0,
		OwnerID:          ownerID,
		Archived:         false,
	}
	if client != nil {
		project.Client = *client
	}
	if tags != nil {
		project.Tags = tags
	}

	doc := sanitize.Map(map[string]any{
		models.ProjectFieldName:             project.Name,
		models.ProjectFieldClient:           project.Client,
		models.ProjectFieldTags:             project.Tags,
		models.ProjectFieldCreatedAt:        project.CreatedAt,
		models.ProjectFieldUpdatedAt:        project.UpdatedAt,
		models.ProjectFieldTotalGenerations: project.TotalGenerations,
		models.ProjectFieldOwnerID:          project.OwnerID,
		models.ProjectFieldArchived:         project.Archived,
	})

	id, err := c.backend.Insert(ctx, models.ProjectsTable, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project.ID = id
	return &project, nil
}

// ListProjectsByOwner returns the owner's archived or active projects, most
// recently updated first. When the ordered query cannot be served it falls
// back once to an unordered query sorted in process.
func (c *Client) ListProjectsByOwner(ctx context.Context, ownerID string, archived bool) ([]models.Project, error) {
	q := Query{
		Table: models.ProjectsTable,
		Filters: []Filter{
			{Field: models.ProjectFieldOwnerID, Value: ownerID},
			{Field: models.ProjectFieldArchived, Value: archived},
		},
		OrderBy: models.ProjectFieldUpdatedAt,
		Desc:    true,
	}

	var projects []models.Project
	err := c.backend.Find(ctx, q, &projects)
	if err != nil {
		if ClassifyListError(err) != RetryWithoutOrder {
			return nil, err
		}

		c.logger.Warn("ordered project query needs a composite index, sorting in process",
			"owner_id", ownerID,
			"archived", archived,
			"error", err,
		)

		q.OrderBy = ""
		q.Desc = false
		projects = nil
		if err := c.backend.Find(ctx, q, &projects); err != nil {
			return nil, err
		}
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].UpdatedAt > projects[j].UpdatedAt
		})
	}

	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// GetProject returns nil, nil when the project does not exist.
func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var projects []models.Project
	err := c.backend.Find(ctx, Query{
		Table:   models.ProjectsTable,
		Filters: []Filter{{Field: models.ProjectFieldID, Value: id}},
		Limit:   1,
	}, &projects)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

func (c *Client) RenameProject(ctx context.Context, id, name string) error {
	return c.updateProject(ctx, id, map[string]any{
		models.ProjectFieldName: name,
	})
}

func (c *Client) ArchiveProject(ctx context.Context, id string, archived bool) error {
	return c.updateProject(ctx, id, map[string]any{
		models.ProjectFieldArchived: archived,
	})
}

// RecordGeneration bumps the project's generation counter. updatedAt is left
// alone so generating does not reorder the project list.
func (c *Client) RecordGeneration(ctx context.Context, id string) error {
	err := c.backend.Increment(ctx, models.ProjectsTable, id, models.ProjectFieldTotalGenerations, 1)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, models.ProjectsTable, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (c *Client) updateProject(ctx context.Context, id string, patch map[string]any) error {
	patch[models.ProjectFieldUpdatedAt] = c.nowMillis()
	if err := c.backend.Update(ctx, models.ProjectsTable, id, sanitize.Map(patch)); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}
