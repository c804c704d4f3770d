package models

type CreateProjectRequest struct {
	Name   string   `json:"name" binding:"required" example:"Spring campaign"`
	Client *string  `json:"client,omitempty" example:"Acme"`
	Tags   []string `json:"tags,omitempty"`
}

// UpdateProjectRequest renames and/or archives a project. Omitted fields are left alone.
type UpdateProjectRequest struct {
	Name     *string `json:"name,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

type ArchiveProjectRequest struct {
	Archived bool `json:"archived" example:"true"`
}

type CreatePresetRequest struct {
	Category    PresetCategory `json:"category" binding:"required" example:"social"`
	Platform    string         `json:"platform" example:"Instagram"`
	ContentType string         `json:"content_type" example:"Post"`
	Prompt      string         `json:"prompt" binding:"required"`
}

type UpdatePresetRequest struct {
	Category    *PresetCategory `json:"category,omitempty"`
	Platform    *string         `json:"platform,omitempty"`
	ContentType *string         `json:"content_type,omitempty"`
	Prompt      *string         `json:"prompt,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

type ThemeRequest struct {
	Theme Theme `json:"theme" binding:"required" example:"dark"`
}

type OpenRouterKeyRequest struct {
	Key string `json:"key"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type SaveGenerationRequest struct {
	Prompt string           `json:"prompt"`
	Mode   GenMode          `json:"mode" example:"t2i"`
	Images []LocalImageItem `json:"images,omitempty"`
}

type AppendImagesRequest struct {
	Images []LocalImageItem `json:"images" binding:"required"`
}

// FiltersPatchRequest carries raw tag input; any shape accepted by the tag
// normalizer is allowed.
type FiltersPatchRequest struct {
	Query    *string `json:"query,omitempty"`
	Tags     any     `json:"tags,omitempty"`
	DateSort *string `json:"date_sort,omitempty" example:"newest"`
}

type ToggleTagRequest struct {
	Tag string `json:"tag" binding:"required" example:"Design"`
}

// GenerateRequest is the JSON form of a generation. Requests with a photo
// are sent as multipart/form-data with the same field names plus "photo".
type GenerateRequest struct {
	OperationType string            `json:"operation_type" binding:"required" example:"Brand Logo"`
	Fields        map[string]string `json:"fields,omitempty"`
}

type CategoryPresetRequest struct {
	Values map[string]any `json:"values" binding:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
