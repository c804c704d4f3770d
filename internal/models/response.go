package models

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

type PresetListResponse struct {
	Presets []PromptPreset `json:"presets"`
}

type AuthResponse struct {
	UserID       string `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

type GenerationListResponse struct {
	Generations []LocalGeneration `json:"generations"`
}

type ImageListResponse struct {
	Images []ProjectImageFlat `json:"images"`
}

type DashboardFilters struct {
	Query         string   `json:"query"`
	Tags          []string `json:"tags"`
	DateSort      string   `json:"date_sort"`
	AvailableTags []string `json:"available_tags"`
}

type DashboardProjectsResponse struct {
	Projects []Project        `json:"projects"`
	Filters  DashboardFilters `json:"filters"`
	// Stale is set when a newer fetch superseded this one.
	Stale bool `json:"stale,omitempty"`
}

type GenerateResponse struct {
	Generation LocalGeneration `json:"generation"`
	Output     string          `json:"output"`
	FileID     string          `json:"file_id,omitempty"`
}

type OperationInfo struct {
	OperationType string `json:"operation_type"`
	Description   string `json:"description"`
	RequiresPhoto bool   `json:"requires_photo"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type OpenRouterKeyResponse struct {
	Key    string `json:"key"`
	HasKey bool   `json:"has_key"`
}
