package dashboard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AllTag is the "no tag filter" selection. It never appears together with
// another tag.
const AllTag = "All"

// NormalizeTags turns loosely typed input into a tag list. It accepts string
// slices, arbitrary slices (elements are stringified), a JSON-encoded array or
// string, or a bare string. Anything else yields ["All"].
func NormalizeTags(input any) []string {
	switch v := input.(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = stringify(e)
		}
		return out
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return []string{trimmed}
			}
			return []string{AllTag}
		}
		switch p := parsed.(type) {
		case []any:
			return NormalizeTags(p)
		case string:
			if p != "" {
				return []string{p}
			}
		}
	}
	return []string{AllTag}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// canonicalTags enforces the selection invariants: never empty, "All" only on
// its own, no duplicates.
func canonicalTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == AllTag || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return []string{AllTag}
	}
	return out
}

// ToggleTag returns the selection after clicking tag. "All" resets the
// selection; a concrete tag is added or removed and "All" is dropped.
func ToggleTag(prev []string, tag string) []string {
	if tag == AllTag {
		return []string{AllTag}
	}

	selected := false
	for _, t := range prev {
		if t == tag {
			selected = true
			break
		}
	}

	next := make([]string, 0, len(prev)+1)
	for _, t := range prev {
		if t == AllTag || (selected && t == tag) {
			continue
		}
		next = append(next, t)
	}
	if !selected {
		next = append(next, tag)
	}
	if len(next) == 0 {
		return []string{AllTag}
	}
	return next
}

func isAllOnly(tags []string) bool {
	return len(tags) == 1 && tags[0] == AllTag
}
