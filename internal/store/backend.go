package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

type Filter struct {
	Field string
	Value any
}

// Query is an equality-filtered read of one table with an optional single
// order-by field.
type Query struct {
	Table   string
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

func (q Query) Ordered() bool {
	return q.OrderBy != ""
}

// Backend is the document database behind the store. Documents are flat
// maps keyed by column name; Find decodes matching rows into dest, which must
// be a pointer to a slice.
type Backend interface {
	Insert(ctx context.Context, table string, doc map[string]any) (string, error)
	Find(ctx context.Context, q Query, dest any) error
	Update(ctx context.Context, table, id string, patch map[string]any) error
	// Increment adds delta to a numeric field in one atomic step and
	// touches no other field.
	Increment(ctx context.Context, table, id, field string, delta int) error
	Upsert(ctx context.Context, table, id string, doc map[string]any) error
	Delete(ctx context.Context, table, id string) error
}
