package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/store"
)

// tableColumns lists the writable and filterable columns of each table.
var tableColumns = map[string]map[string]bool{
	models.ProjectsTable: set("id", "name", "client", "tags", "created_at", "updated_at",
		"total_generations", "owner_id", "archived"),
	models.PresetsTable: set("id", "owner_id", "category", "platform", "content_type", "prompt",
		"created_at", "updated_at"),
	models.CategoryPresetsTable: set("id", "owner_id", "category", "values", "updated_at"),
	models.UsersTable: set("id", "email", "display_name", "photo_url", "plan", "theme",
		"openrouter_key", "created_at", "updated_at"),
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// DatabaseClient talks to the Supabase Postgres database directly.
type DatabaseClient struct {
	db *sql.DB
	// orderedTimeout bounds ordered list queries. Without a supporting index
	// they are cancelled with SQLSTATE 57014, which the store treats as a
	// request to retry unordered.
	orderedTimeout time.Duration
}

func NewDatabaseClient(connectionString string, orderedTimeout time.Duration) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db, orderedTimeout: orderedTimeout}, nil
}

func (d *DatabaseClient) Insert(ctx context.Context, table string, doc map[string]any) (string, error) {
	cols, args, err := columnsAndArgs(table, doc)
	if err != nil {
		return "", err
	}

	placeholders := make([]string, len(cols))
	quoted := make([]string, len(cols))
	for i, c := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		quoted[i] = pq.QuoteIdentifier(c)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	var id string
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return id, nil
}

func (d *DatabaseClient) Find(ctx context.Context, q store.Query, dest any) error {
	allowed, ok := tableColumns[q.Table]
	if !ok {
		return fmt.Errorf("unknown table %q", q.Table)
	}

	var where []string
	var args []any
	for _, f := range q.Filters {
		if !allowed[f.Field] {
			return fmt.Errorf("unknown column %s.%s", q.Table, f.Field)
		}
		args = append(args, f.Value)
		where = append(where, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(f.Field), len(args)))
	}

	inner := "SELECT * FROM " + pq.QuoteIdentifier(q.Table)
	if len(where) > 0 {
		inner += " WHERE " + strings.Join(where, " AND ")
	}
	agg := "json_agg(t)"
	if q.Ordered() {
		if !allowed[q.OrderBy] {
			return fmt.Errorf("unknown column %s.%s", q.Table, q.OrderBy)
		}
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		inner += fmt.Sprintf(" ORDER BY %s %s", pq.QuoteIdentifier(q.OrderBy), dir)
		agg = fmt.Sprintf("json_agg(t ORDER BY t.%s %s)", pq.QuoteIdentifier(q.OrderBy), dir)

		if d.orderedTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.orderedTimeout)
			defer cancel()
		}
	}
	if q.Limit > 0 {
		inner += " LIMIT " + strconv.Itoa(q.Limit)
	}

	query := fmt.Sprintf("SELECT COALESCE(%s, '[]'::json) FROM (%s) t", agg, inner)

	var raw []byte
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return fmt.Errorf("failed to query %s: %w", q.Table, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s rows: %w", q.Table, err)
	}
	return nil
}

func (d *DatabaseClient) Update(ctx context.Context, table, id string, patch map[string]any) error {
	delete(patch, "id")
	cols, args, err := columnsAndArgs(table, patch)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}

	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), i+1)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		pq.QuoteIdentifier(table), strings.Join(assignments, ", "), len(args))

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update %s/%s: %w", table, id, store.ErrNotFound)
	}
	return nil
}

func (d *DatabaseClient) Increment(ctx context.Context, table, id, field string, delta int) error {
	allowed, ok := tableColumns[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	if !allowed[field] || field == "id" {
		return fmt.Errorf("unknown column %s.%s", table, field)
	}

	col := pq.QuoteIdentifier(field)
	query := fmt.Sprintf("UPDATE %s SET %s = COALESCE(%s, 0) + $1 WHERE id = $2",
		pq.QuoteIdentifier(table), col, col)

	res, err := d.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to increment %s.%s: %w", table, field, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to increment %s/%s: %w", table, id, store.ErrNotFound)
	}
	return nil
}

func (d *DatabaseClient) Upsert(ctx context.Context, table, id string, doc map[string]any) error {
	row := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		row[k] = v
	}
	row["id"] = id

	cols, args, err := columnsAndArgs(table, row)
	if err != nil {
		return err
	}

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	var updates []string
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
		placeholders[i] = "$" + strconv.Itoa(i+1)
		if c != "id" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", quoted[i], quoted[i]))
		}
	}

	conflict := "DO NOTHING"
	if len(updates) > 0 {
		conflict = "DO UPDATE SET " + strings.Join(updates, ", ")
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) %s",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "), conflict)

	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}
	return nil
}

func (d *DatabaseClient) Delete(ctx context.Context, table, id string) error {
	if _, ok := tableColumns[table]; !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", pq.QuoteIdentifier(table))
	if _, err := d.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// columnsAndArgs validates doc keys against the table and returns them in a
// stable order with driver-ready values. Slices and maps are written as JSON.
func columnsAndArgs(table string, doc map[string]any) ([]string, []any, error) {
	allowed, ok := tableColumns[table]
	if !ok {
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}

	cols := make([]string, 0, len(doc))
	for k := range doc {
		if !allowed[k] {
			return nil, nil, fmt.Errorf("unknown column %s.%s", table, k)
		}
		cols = append(cols, k)
	}
	sort.Strings(cols)

	args := make([]any, len(cols))
	for i, c := range cols {
		switch v := doc[c].(type) {
		case []string, []any, map[string]any:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to encode %s.%s: %w", table, c, err)
			}
			args[i] = string(data)
		default:
			args[i] = v
		}
	}
	return cols, args, nil
}
