package models

type PresetCategory string

const (
	PresetCategorySocial    PresetCategory = "social"
	PresetCategoryMarketing PresetCategory = "marketing"
	PresetCategoryEcom      PresetCategory = "ecom"
)

func (c PresetCategory) Valid() bool {
	switch c {
	case PresetCategorySocial, PresetCategoryMarketing, PresetCategoryEcom:
		return true
	}
	return false
}

type PromptPreset struct {
	ID          string         `json:"id,omitempty"`
	OwnerID     string         `json:"owner_id,omitempty"`
	Category    PresetCategory `json:"category"`
	Platform    string         `json:"platform"`
	ContentType string         `json:"content_type"`
	Prompt      string         `json:"prompt"`
	CreatedAt   int64          `json:"created_at,omitempty"`
	UpdatedAt   int64          `json:"updated_at,omitempty"`
}

// CategoryPreset is the single saved preset per user and category.
type CategoryPreset struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id"`
	Category  PresetCategory `json:"category"`
	Values    map[string]any `json:"values"`
	UpdatedAt int64          `json:"updated_at"`
}

const (
	PresetsTable         = "presets"
	CategoryPresetsTable = "category_presets"
)
