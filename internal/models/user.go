package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

type AppUser struct {
	UID           string  `json:"id"`
	Email         string  `json:"email"`
	DisplayName   string  `json:"display_name"`
	PhotoURL      *string `json:"photo_url"`
	Plan          string  `json:"plan"`
	Theme         Theme   `json:"theme,omitempty"`
	OpenRouterKey *string `json:"openrouter_key"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
}

const UsersTable = "users"
