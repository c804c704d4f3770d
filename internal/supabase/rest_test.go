package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"marketing-studio-backend/internal/config"
	"marketing-studio-backend/internal/store"
	"marketing-studio-backend/internal/supabase"
)

// counterTable serves one projects row over a PostgREST-shaped API. Every
// read is followed by a write from another client, once, to force a lost
// compare-and-set.
type counterTable struct {
	mu         sync.Mutex
	value      int64
	interfered bool
	patches    int
}

func (c *counterTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()
	if r.URL.Path != "/rest/v1/projects" || q.Get("id") != "eq.p1" {
		_, _ = w.Write([]byte(`[]`))
		return
	}

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode([]map[string]any{{"total_generations": c.value}})
		if !c.interfered {
			c.interfered = true
			c.value++
		}
	case http.MethodPatch:
		c.patches++
		var body map[string]int64
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if q.Get("total_generations") != "eq."+strconv.FormatInt(c.value, 10) {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		c.value = body["total_generations"]
		_, _ = w.Write([]byte(`[{"id":"p1"}]`))
	}
}

func newRestBackend(t *testing.T, handler http.Handler) *supabase.RestBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.NewServiceClient(&config.Config{SupabaseURL: srv.URL, SupabasePublishableKey: "anon"})
	require.NoError(t, err)
	return supabase.NewRestBackend(client)
}

func TestRestBackend_IncrementRetriesLostUpdate(t *testing.T) {
	table := &counterTable{value: 4}
	backend := newRestBackend(t, table)

	err := backend.Increment(context.Background(), "projects", "p1", "total_generations", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(6), table.value)
	assert.Equal(t, 2, table.patches)
}

func TestRestBackend_IncrementMissingRow(t *testing.T) {
	backend := newRestBackend(t, &counterTable{})

	err := backend.Increment(context.Background(), "projects", "missing", "total_generations", 1)

	assert.ErrorIs(t, err, store.ErrNotFound)
}
