package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryBackend keeps documents in process. It backs local development and tests.
type MemoryBackend struct {
	mu     sync.RWMutex
	tables map[string]map[string]map[string]any
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: make(map[string]map[string]map[string]any)}
}

func (m *MemoryBackend) Insert(ctx context.Context, table string, doc map[string]any) (string, error) {
	normalized, err := normalize(doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	id, _ := normalized["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	normalized["id"] = id

	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.table(table)
	if _, exists := rows[id]; exists {
		return "", fmt.Errorf("failed to insert into %s: duplicate id %s", table, id)
	}
	rows[id] = normalized
	return id, nil
}

func (m *MemoryBackend) Find(ctx context.Context, q Query, dest any) error {
	filters := make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		v, err := normalizeValue(f.Value)
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", q.Table, err)
		}
		filters[i] = Filter{Field: f.Field, Value: v}
	}

	m.mu.RLock()
	var matched []map[string]any
	for _, doc := range m.tables[q.Table] {
		if matches(doc, filters) {
			matched = append(matched, doc)
		}
	}
	m.mu.RUnlock()

	// Unordered reads still need a stable order across calls.
	sort.Slice(matched, func(i, j int) bool {
		return fmt.Sprint(matched[i]["id"]) < fmt.Sprint(matched[j]["id"])
	})
	if q.Ordered() {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(matched[i][q.OrderBy], matched[j][q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	if matched == nil {
		matched = []map[string]any{}
	}

	data, err := json.Marshal(matched)
	if err != nil {
		return fmt.Errorf("failed to encode %s rows: %w", q.Table, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s rows: %w", q.Table, err)
	}
	return nil
}

func (m *MemoryBackend) Update(ctx context.Context, table, id string, patch map[string]any) error {
	normalized, err := normalize(patch)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.tables[table][id]
	if !ok {
		return fmt.Errorf("failed to update %s/%s: %w", table, id, ErrNotFound)
	}
	for k, v := range normalized {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	return nil
}

func (m *MemoryBackend) Increment(ctx context.Context, table, id, field string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.tables[table][id]
	if !ok {
		return fmt.Errorf("failed to increment %s/%s: %w", table, id, ErrNotFound)
	}
	var current float64
	switch v := doc[field].(type) {
	case nil:
	case float64:
		current = v
	default:
		return fmt.Errorf("failed to increment %s.%s: not a number", table, field)
	}
	doc[field] = current + float64(delta)
	return nil
}

func (m *MemoryBackend) Upsert(ctx context.Context, table, id string, doc map[string]any) error {
	normalized, err := normalize(doc)
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.table(table)
	existing, ok := rows[id]
	if !ok {
		normalized["id"] = id
		rows[id] = normalized
		return nil
	}
	for k, v := range normalized {
		if k == "id" {
			continue
		}
		existing[k] = v
	}
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, table, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables[table], id)
	return nil
}

func (m *MemoryBackend) table(name string) map[string]map[string]any {
	rows, ok := m.tables[name]
	if !ok {
		rows = make(map[string]map[string]any)
		m.tables[name] = rows
	}
	return rows
}

// normalize round-trips through JSON so stored values have the same shape a
// remote store would return.
func normalize(doc map[string]any) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(data, &out)
	return out, err
}

func matches(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !reflect.DeepEqual(doc[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func compare(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return 0
}
