package gallery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"marketing-studio-backend/internal/gallery"
	"marketing-studio-backend/internal/models"
)

func rows() []models.ProjectImageFlat {
	return []models.ProjectImageFlat{
		{GenID: "1", Prompt: "Sunset beach ad", Mode: models.GenModeT2I},
		{GenID: "2", Prompt: "Product on marble", Mode: models.GenModeI2I},
		{GenID: "3", Prompt: "Beach towel", Mode: models.GenModeI2I},
	}
}

func TestFilterImages(t *testing.T) {
	project := &models.Project{Name: "Summer", Client: "Acme"}

	assert.Len(t, gallery.FilterImages(rows(), gallery.ModeAll, "", project), 3)
	assert.Len(t, gallery.FilterImages(rows(), "i2i", "", project), 2)

	beach := gallery.FilterImages(rows(), "all", "  BEACH ", project)
	assert.Len(t, beach, 2)

	i2iBeach := gallery.FilterImages(rows(), "i2i", "beach", project)
	assert.Len(t, i2iBeach, 1)
	assert.Equal(t, "3", i2iBeach[0].GenID)

	// Query matching the client keeps all rows of the selected mode.
	assert.Len(t, gallery.FilterImages(rows(), "all", "acme", project), 3)
	assert.Empty(t, gallery.FilterImages(rows(), "all", "acme", nil))
}

func TestFilterGenerations(t *testing.T) {
	gens := []models.LocalGeneration{
		{ID: "1", Prompt: "Logo for bakery", Mode: models.GenModeT2I},
		{ID: "2", Prompt: "Recreate logo", Mode: models.GenModeI2I},
	}

	assert.Len(t, gallery.FilterGenerations(gens, "all", "logo"), 2)
	assert.Len(t, gallery.FilterGenerations(gens, "t2i", "logo"), 1)
	assert.Empty(t, gallery.FilterGenerations(gens, "all", "acme"))
}

func TestValidMode(t *testing.T) {
	assert.True(t, gallery.ValidMode("all"))
	assert.True(t, gallery.ValidMode("t2i"))
	assert.False(t, gallery.ValidMode("video"))
}
