package dashboard

import (
	"sort"
	"strings"
	"time"

	"marketing-studio-backend/internal/models"
)

const day = 24 * time.Hour

// Reconcile derives the visible rows from the fetched projects: text filter,
// then tag filter, then the recency window, then the createdAt sort. The
// input slice is not modified.
func Reconcile(projects []models.Project, state FilterState, now time.Time) []models.Project {
	rows := make([]models.Project, 0, len(projects))

	q := strings.ToLower(strings.TrimSpace(state.Query))
	selected := make(map[string]bool, len(state.Tags))
	for _, t := range state.Tags {
		selected[strings.ToLower(t)] = true
	}
	filterTags := !isAllOnly(state.Tags)

	var cutoff int64
	switch state.DateSort {
	case SortLast7:
		cutoff = now.Add(-7 * day).UnixMilli()
	case SortLast30:
		cutoff = now.Add(-30 * day).UnixMilli()
	}

	for _, p := range projects {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if filterTags && !hasAnyTag(p, selected) {
			continue
		}
		if cutoff != 0 && p.CreatedAt < cutoff {
			continue
		}
		rows = append(rows, p)
	}

	if state.DateSort == SortOldest {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt < rows[j].CreatedAt })
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt > rows[j].CreatedAt })
	}
	return rows
}

func matchesQuery(p models.Project, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Client), q) ||
		strings.Contains(strings.ToLower(strings.Join(p.Tags, ", ")), q)
}

func hasAnyTag(p models.Project, selected map[string]bool) bool {
	for _, t := range p.Tags {
		if selected[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

// ProjectTags collects every tag used by the projects in first-seen order.
func ProjectTags(projects []models.Project) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range projects {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
