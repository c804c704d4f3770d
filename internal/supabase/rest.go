package supabase

import (
	"context"
	"fmt"
	"strconv"

	postgrest "github.com/supabase-community/postgrest-go"
	"marketing-studio-backend/internal/store"
)

// RestBackend serves store queries through the Supabase PostgREST API.
// The PostgREST client is not context aware, so ctx is only used by callers.
type RestBackend struct {
	client *Client
}

func NewRestBackend(client *Client) *RestBackend {
	return &RestBackend{client: client}
}

type idRow struct {
	ID string `json:"id"`
}

func (b *RestBackend) Insert(ctx context.Context, table string, doc map[string]any) (string, error) {
	var rows []idRow
	_, err := b.client.Supabase.From(table).
		Insert(doc, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	if len(rows) == 0 || rows[0].ID == "" {
		return "", fmt.Errorf("insert into %s returned no id", table)
	}
	return rows[0].ID, nil
}

// Find returns PostgREST errors unwrapped so the list error classifier sees
// the "(code) message" text as produced by the client.
func (b *RestBackend) Find(ctx context.Context, q store.Query, dest any) error {
	fb := b.client.Supabase.From(q.Table).Select("*", "", false)
	for _, f := range q.Filters {
		fb = fb.Eq(f.Field, formatFilterValue(f.Value))
	}
	if q.Ordered() {
		fb = fb.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Desc})
	}
	if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}
	_, err := fb.ExecuteTo(dest)
	return err
}

func (b *RestBackend) Update(ctx context.Context, table, id string, patch map[string]any) error {
	var rows []idRow
	_, err := b.client.Supabase.From(table).
		Update(patch, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("failed to update %s/%s: %w", table, id, store.ErrNotFound)
	}
	return nil
}

// incrementAttempts bounds the compare-and-set loop in Increment.
const incrementAttempts = 8

// Increment runs a compare-and-set loop: the PATCH only matches while the
// field still holds the value that was read, so concurrent writers retry
// instead of overwriting each other.
func (b *RestBackend) Increment(ctx context.Context, table, id, field string, delta int) error {
	for attempt := 0; attempt < incrementAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var current []map[string]*int64
		_, err := b.client.Supabase.From(table).
			Select(field, "", false).
			Eq("id", id).
			ExecuteTo(&current)
		if err != nil {
			return fmt.Errorf("failed to read %s.%s: %w", table, field, err)
		}
		if len(current) == 0 {
			return fmt.Errorf("failed to increment %s/%s: %w", table, id, store.ErrNotFound)
		}

		fb := b.client.Supabase.From(table).
			Update(map[string]any{field: valueOf(current[0][field]) + int64(delta)}, "representation", "").
			Eq("id", id)
		if old := current[0][field]; old == nil {
			fb = fb.Is(field, "null")
		} else {
			fb = fb.Eq(field, strconv.FormatInt(*old, 10))
		}

		var rows []idRow
		if _, err := fb.ExecuteTo(&rows); err != nil {
			return fmt.Errorf("failed to increment %s.%s: %w", table, field, err)
		}
		if len(rows) > 0 {
			return nil
		}
	}
	return fmt.Errorf("failed to increment %s/%s: value kept changing after %d attempts", table, id, incrementAttempts)
}

func valueOf(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func (b *RestBackend) Upsert(ctx context.Context, table, id string, doc map[string]any) error {
	row := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		row[k] = v
	}
	row["id"] = id

	_, _, err := b.client.Supabase.From(table).
		Upsert(row, "id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}
	return nil
}

func (b *RestBackend) Delete(ctx context.Context, table, id string) error {
	_, _, err := b.client.Supabase.From(table).
		Delete("minimal", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func formatFilterValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return fmt.Sprint(v)
}
