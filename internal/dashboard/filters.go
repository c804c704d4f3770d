// Package dashboard derives the visible project list from per-session filter
// state.
package dashboard

import (
	"errors"
	"fmt"
	"sync"
)

type DateSort string

const (
	SortNewest DateSort = "newest"
	SortOldest DateSort = "oldest"
	SortLast7  DateSort = "7d"
	SortLast30 DateSort = "30d"
)

var ErrInvalidDateSort = errors.New("invalid date sort")

func ParseDateSort(s string) (DateSort, error) {
	switch d := DateSort(s); d {
	case SortNewest, SortOldest, SortLast7, SortLast30:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDateSort, s)
}

// FilterState is an immutable snapshot of Filters.
type FilterState struct {
	Query         string
	Tags          []string
	DateSort      DateSort
	AvailableTags []string
}

// Filters is the mutable filter state of one dashboard session.
type Filters struct {
	mu            sync.RWMutex
	query         string
	tags          []string
	dateSort      DateSort
	availableTags []string
}

func NewFilters() *Filters {
	return &Filters{
		tags:          []string{AllTag},
		dateSort:      SortNewest,
		availableTags: []string{},
	}
}

func (f *Filters) SetQuery(q string) {
	f.mu.Lock()
	f.query = q
	f.mu.Unlock()
}

// SetTags replaces the tag selection. next may be a func([]string) []string
// receiving the current selection, or any value NormalizeTags accepts.
func (f *Filters) SetTags(next any) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := append([]string{}, f.tags...)
	var value any = next
	if fn, ok := next.(func([]string) []string); ok {
		value = fn(prev)
	}
	f.tags = canonicalTags(NormalizeTags(value))
	return append([]string{}, f.tags...)
}

func (f *Filters) ToggleTag(tag string) []string {
	return f.SetTags(func(prev []string) []string {
		return ToggleTag(prev, tag)
	})
}

func (f *Filters) SetDateSort(d DateSort) error {
	if _, err := ParseDateSort(string(d)); err != nil {
		return err
	}
	f.mu.Lock()
	f.dateSort = d
	f.mu.Unlock()
	return nil
}

// SetAvailableTags replaces the filterable tags, keeping the first
// occurrence of each.
func (f *Filters) SetAvailableTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}

	f.mu.Lock()
	f.availableTags = out
	f.mu.Unlock()
}

func (f *Filters) Snapshot() FilterState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FilterState{
		Query:         f.query,
		Tags:          append([]string{}, f.tags...),
		DateSort:      f.dateSort,
		AvailableTags: append([]string{}, f.availableTags...),
	}
}
