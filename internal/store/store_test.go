package store_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/store"
)

// indexlessBackend rejects ordered queries the way a store without the
// composite index does.
type indexlessBackend struct {
	*store.MemoryBackend
	orderErr     error
	orderedCalls int
	plainCalls   int
}

func (b *indexlessBackend) Find(ctx context.Context, q store.Query, dest any) error {
	if q.Ordered() {
		b.orderedCalls++
		if b.orderErr != nil {
			return b.orderErr
		}
	} else {
		b.plainCalls++
	}
	return b.MemoryBackend.Find(ctx, q, dest)
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestClient(backend store.Backend) (*store.Client, *clock) {
	clk := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.NewClient(backend, logger, store.WithClock(clk.now)), clk
}

func TestCreateProject_Defaults(t *testing.T) {
	client, clk := newTestClient(store.NewMemoryBackend())

	p, err := client.CreateProject(context.Background(), "user-1", "Launch", nil, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "", p.Client)
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, 0, p.TotalGenerations)
	assert.False(t, p.Archived)
	assert.Equal(t, clk.t.UnixMilli(), p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	stored, err := client.GetProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *stored)
}

func TestGetProject_Missing(t *testing.T) {
	client, _ := newTestClient(store.NewMemoryBackend())

	p, err := client.GetProject(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestListProjectsByOwner_Ordered(t *testing.T) {
	backend := &indexlessBackend{MemoryBackend: store.NewMemoryBackend()}
	client, clk := newTestClient(backend)
	ctx := context.Background()

	a, _ := client.CreateProject(ctx, "u", "A", nil, nil)
	clk.advance(time.Minute)
	b, _ := client.CreateProject(ctx, "u", "B", nil, nil)
	clk.advance(time.Minute)
	_, _ = client.CreateProject(ctx, "other", "C", nil, nil)
	clk.advance(time.Minute)
	require.NoError(t, client.RenameProject(ctx, a.ID, "A2"))

	projects, err := client.ListProjectsByOwner(ctx, "u", false)

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, a.ID, projects[0].ID)
	assert.Equal(t, "A2", projects[0].Name)
	assert.Equal(t, b.ID, projects[1].ID)
	assert.Equal(t, 1, backend.orderedCalls)
	assert.Equal(t, 0, backend.plainCalls)
}

func TestListProjectsByOwner_FallbackWithoutIndex(t *testing.T) {
	cases := []error{
		errors.New("9 FAILED_PRECONDITION: The query requires an index. You can create it here"),
		errors.New("firestore: failed-precondition"),
		errors.New("(57014) canceling statement due to statement timeout"),
		fmt.Errorf("list: %w", store.ErrIndexRequired),
	}

	for _, orderErr := range cases {
		t.Run(orderErr.Error(), func(t *testing.T) {
			backend := &indexlessBackend{MemoryBackend: store.NewMemoryBackend(), orderErr: orderErr}
			client, clk := newTestClient(backend)
			ctx := context.Background()

			first, _ := client.CreateProject(ctx, "u", "first", nil, nil)
			clk.advance(time.Hour)
			second, _ := client.CreateProject(ctx, "u", "second", nil, nil)
			clk.advance(time.Hour)
			third, _ := client.CreateProject(ctx, "u", "third", nil, nil)
			clk.advance(time.Hour)
			require.NoError(t, client.ArchiveProject(ctx, second.ID, false))

			projects, err := client.ListProjectsByOwner(ctx, "u", false)

			require.NoError(t, err)
			require.Len(t, projects, 3)
			assert.Equal(t, []string{second.ID, third.ID, first.ID},
				[]string{projects[0].ID, projects[1].ID, projects[2].ID})
			assert.Equal(t, 1, backend.orderedCalls)
			assert.Equal(t, 1, backend.plainCalls)
		})
	}
}

func TestListProjectsByOwner_OtherErrorsPropagate(t *testing.T) {
	denied := errors.New("(42501) permission denied for table projects")
	backend := &indexlessBackend{MemoryBackend: store.NewMemoryBackend(), orderErr: denied}
	client, _ := newTestClient(backend)

	projects, err := client.ListProjectsByOwner(context.Background(), "u", false)

	assert.Nil(t, projects)
	assert.Same(t, denied, err)
	assert.Equal(t, 0, backend.plainCalls)
}

func TestListProjectsByOwner_ArchivedPartition(t *testing.T) {
	client, _ := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()

	active, _ := client.CreateProject(ctx, "u", "active", nil, nil)
	archived, _ := client.CreateProject(ctx, "u", "old", nil, nil)
	require.NoError(t, client.ArchiveProject(ctx, archived.ID, true))

	live, err := client.ListProjectsByOwner(ctx, "u", false)
	require.NoError(t, err)
	gone, err := client.ListProjectsByOwner(ctx, "u", true)
	require.NoError(t, err)

	require.Len(t, live, 1)
	require.Len(t, gone, 1)
	assert.Equal(t, active.ID, live[0].ID)
	assert.Equal(t, archived.ID, gone[0].ID)
}

func TestListProjectsByOwner_EmptyIsNotNil(t *testing.T) {
	client, _ := newTestClient(store.NewMemoryBackend())

	projects, err := client.ListProjectsByOwner(context.Background(), "nobody", false)

	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestRenameAndArchiveBumpUpdatedAt(t *testing.T) {
	client, clk := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()
	p, _ := client.CreateProject(ctx, "u", "A", nil, []string{"Design"})

	clk.advance(time.Second)
	require.NoError(t, client.RenameProject(ctx, p.ID, "B"))
	renamed, _ := client.GetProject(ctx, p.ID)
	assert.Equal(t, clk.t.UnixMilli(), renamed.UpdatedAt)
	assert.Equal(t, p.CreatedAt, renamed.CreatedAt)

	clk.advance(time.Second)
	require.NoError(t, client.ArchiveProject(ctx, p.ID, true))
	archived, _ := client.GetProject(ctx, p.ID)
	assert.True(t, archived.Archived)
	assert.Equal(t, clk.t.UnixMilli(), archived.UpdatedAt)
	assert.Equal(t, []string{"Design"}, archived.Tags)
}

func TestDeleteProject(t *testing.T) {
	client, _ := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()
	p, _ := client.CreateProject(ctx, "u", "A", nil, nil)

	require.NoError(t, client.DeleteProject(ctx, p.ID))

	gone, err := client.GetProject(ctx, p.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRecordGeneration(t *testing.T) {
	client, _ := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()
	p, _ := client.CreateProject(ctx, "u", "A", nil, nil)

	require.NoError(t, client.RecordGeneration(ctx, p.ID))
	require.NoError(t, client.RecordGeneration(ctx, p.ID))

	got, _ := client.GetProject(ctx, p.ID)
	assert.Equal(t, 2, got.TotalGenerations)
	assert.ErrorIs(t, client.RecordGeneration(ctx, "missing"), store.ErrNotFound)
}

func TestRecordGeneration_ConcurrentCallsAllCount(t *testing.T) {
	client, clk := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()
	p, _ := client.CreateProject(ctx, "u", "A", nil, nil)
	clk.advance(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, client.RecordGeneration(ctx, p.ID))
		}()
	}
	wg.Wait()

	got, err := client.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.TotalGenerations)
	assert.Equal(t, p.UpdatedAt, got.UpdatedAt)
}

func TestClassifyListError(t *testing.T) {
	assert.Equal(t, store.RetryWithoutOrder, store.ClassifyListError(errors.New("The query requires an index.")))
	assert.Equal(t, store.RetryWithoutOrder, store.ClassifyListError(errors.New("code = failed-precondition")))
	assert.Equal(t, store.RetryWithoutOrder, store.ClassifyListError(errors.New("(57014) canceling statement due to statement timeout")))
	assert.Equal(t, store.RetryWithoutOrder, store.ClassifyListError(fmt.Errorf("wrapped: %w", store.ErrIndexRequired)))
	assert.Equal(t, store.RetryWithoutOrder, store.ClassifyListError(fmt.Errorf("query: %w", &pq.Error{Code: "57014"})))
	assert.Equal(t, store.Fatal, store.ClassifyListError(&pq.Error{Code: "42501"}))
	assert.Equal(t, store.Fatal, store.ClassifyListError(errors.New("network unreachable")))
	assert.Equal(t, store.Fatal, store.ClassifyListError(nil))
}

func TestPresets(t *testing.T) {
	client, clk := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()

	social, err := client.CreatePreset(ctx, "u", models.PromptPreset{
		Category: models.PresetCategorySocial, Platform: "Instagram", ContentType: "Post", Prompt: "bright",
	})
	require.NoError(t, err)
	clk.advance(time.Minute)
	ecom, err := client.CreatePreset(ctx, "u", models.PromptPreset{
		Category: models.PresetCategoryEcom, Prompt: "white background",
	})
	require.NoError(t, err)
	_, err = client.CreatePreset(ctx, "someone-else", models.PromptPreset{Category: models.PresetCategorySocial})
	require.NoError(t, err)

	all, err := client.ListPresets(ctx, "u", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ecom.ID, all[0].ID)

	onlySocial, err := client.ListPresets(ctx, "u", models.PresetCategorySocial)
	require.NoError(t, err)
	require.Len(t, onlySocial, 1)
	assert.Equal(t, social.ID, onlySocial[0].ID)

	clk.advance(time.Minute)
	prompt := "moody"
	require.NoError(t, client.UpdatePreset(ctx, "u", social.ID, map[string]any{"prompt": &prompt, "platform": (*string)(nil)}))

	all, _ = client.ListPresets(ctx, "u", "")
	assert.Equal(t, social.ID, all[0].ID)
	assert.Equal(t, "moody", all[0].Prompt)
	assert.Equal(t, "Instagram", all[0].Platform)
	assert.Equal(t, social.CreatedAt, all[0].CreatedAt)

	err = client.UpdatePreset(ctx, "intruder", social.ID, map[string]any{"prompt": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCategoryPresetMerge(t *testing.T) {
	client, _ := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()

	missing, err := client.GetCategoryPreset(ctx, "u", models.PresetCategoryMarketing)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = client.SaveCategoryPreset(ctx, "u", models.PresetCategoryMarketing, map[string]any{"tone": "bold", "platform": "LinkedIn"})
	require.NoError(t, err)
	_, err = client.SaveCategoryPreset(ctx, "u", models.PresetCategoryMarketing, map[string]any{"tone": "calm"})
	require.NoError(t, err)

	saved, err := client.GetCategoryPreset(ctx, "u", models.PresetCategoryMarketing)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, map[string]any{"tone": "calm", "platform": "LinkedIn"}, saved.Values)
}

func TestUserProfile(t *testing.T) {
	client, clk := newTestClient(store.NewMemoryBackend())
	ctx := context.Background()

	user, err := client.UpsertUserProfile(ctx, "u", "a@b.co", map[string]any{"display_name": "Ada", "plan": "pro"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", user.Email)
	assert.Equal(t, "Ada", user.DisplayName)
	assert.Equal(t, models.PlanFree, user.Plan)
	assert.Nil(t, user.OpenRouterKey)
	created := user.CreatedAt

	clk.advance(time.Minute)
	require.NoError(t, client.SetUserTheme(ctx, "u", models.ThemeDark))
	assert.Error(t, client.SetUserTheme(ctx, "u", "sepia"))

	require.NoError(t, client.SetOpenRouterKey(ctx, "u", "  sk-or-123  "))
	key, err := client.GetOpenRouterKey(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "sk-or-123", key)

	user, err = client.GetUser(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, user.Theme)
	assert.Equal(t, created, user.CreatedAt)
	assert.Equal(t, "Ada", user.DisplayName)

	require.NoError(t, client.SetOpenRouterKey(ctx, "u", "   "))
	key, err = client.GetOpenRouterKey(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "", key)
}
