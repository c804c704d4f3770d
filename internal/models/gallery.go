package models

// GenMode is the kind of generation: text-to-image or image-to-image.
type GenMode string

const (
	GenModeT2I GenMode = "t2i"
	GenModeI2I GenMode = "i2i"
)

func (m GenMode) Valid() bool {
	return m == GenModeT2I || m == GenModeI2I
}

type LocalImageItem struct {
	ID       string         `json:"id"`
	DataURL  string         `json:"data_url"`
	ThumbURL string         `json:"thumb_url,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

type LocalGeneration struct {
	ID        string           `json:"id"`
	ProjectID string           `json:"project_id"`
	Prompt    string           `json:"prompt"`
	Mode      GenMode          `json:"mode"`
	CreatedAt int64            `json:"created_at"`
	Images    []LocalImageItem `json:"images"`
}

// ProjectImageFlat is one image row of a project grid.
type ProjectImageFlat struct {
	GenID     string         `json:"gen_id"`
	Prompt    string         `json:"prompt"`
	Mode      GenMode        `json:"mode"`
	CreatedAt int64          `json:"created_at"`
	Image     LocalImageItem `json:"image"`
}
