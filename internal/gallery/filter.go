package gallery

import (
	"strings"

	"marketing-studio-backend/internal/models"
)

// ModeAll disables the mode filter.
const ModeAll = "all"

func ValidMode(mode string) bool {
	return mode == ModeAll || models.GenMode(mode).Valid()
}

// FilterImages narrows image rows by mode and a case-insensitive query over
// the prompt. A query matching the project's name or client keeps every row.
func FilterImages(rows []models.ProjectImageFlat, mode, query string, project *models.Project) []models.ProjectImageFlat {
	q := strings.ToLower(strings.TrimSpace(query))
	projectMatch := false
	if q != "" && project != nil {
		projectMatch = strings.Contains(strings.ToLower(project.Name), q) ||
			strings.Contains(strings.ToLower(project.Client), q)
	}

	out := make([]models.ProjectImageFlat, 0, len(rows))
	for _, r := range rows {
		if mode != "" && mode != ModeAll && string(r.Mode) != mode {
			continue
		}
		if q != "" && !projectMatch && !strings.Contains(strings.ToLower(r.Prompt), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterGenerations narrows generations by mode and a prompt query.
func FilterGenerations(gens []models.LocalGeneration, mode, query string) []models.LocalGeneration {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.LocalGeneration, 0, len(gens))
	for _, g := range gens {
		if mode != "" && mode != ModeAll && string(g.Mode) != mode {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(g.Prompt), q) {
			continue
		}
		out = append(out, g)
	}
	return out
}
