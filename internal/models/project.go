package models

// Project is owned by exactly one user. Timestamps are epoch milliseconds.
type Project struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Client           string   `json:"client"`
	Tags             []string `json:"tags"`
	CreatedAt        int64    `json:"created_at"`
	UpdatedAt        int64    `json:"updated_at"`
	TotalGenerations int      `json:"total_generations"`
	OwnerID          string   `json:"owner_id"`
	Archived         bool     `json:"archived"`
}

// Document field names shared by every project backend.
const (
	ProjectFieldID               = "id"
	ProjectFieldName             = "name"
	ProjectFieldClient           = "client"
	ProjectFieldTags             = "tags"
	ProjectFieldCreatedAt        = "created_at"
	ProjectFieldUpdatedAt        = "updated_at"
	ProjectFieldTotalGenerations = "total_generations"
	ProjectFieldOwnerID          = "owner_id"
	ProjectFieldArchived         = "archived"
)

const ProjectsTable = "projects"
