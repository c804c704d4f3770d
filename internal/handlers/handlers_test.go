package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"marketing-studio-backend/internal/auth"
	"marketing-studio-backend/internal/config"
	"marketing-studio-backend/internal/dashboard"
	"marketing-studio-backend/internal/gallery"
	"marketing-studio-backend/internal/handlers"
	"marketing-studio-backend/internal/imagegen"
	"marketing-studio-backend/internal/models"
	"marketing-studio-backend/internal/router"
	"marketing-studio-backend/internal/services"
	"marketing-studio-backend/internal/store"
)

const secret = "test-secret-key-for-jwt-signing-must-be-long-enough"

type memBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memBlob) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memBlob) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte{}, data...)
	return nil
}

// failingBackend fails every query but accepts writes.
type failingBackend struct {
	*store.MemoryBackend
}

func (failingBackend) Find(ctx context.Context, q store.Query, dest any) error {
	return errors.New("permission denied")
}

type fakeProvider struct {
	signInErr  error
	signOutErr error
	signedOut  []string
}

func (f *fakeProvider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*auth.Session, error) {
	return &auth.Session{UserID: "new-user", Email: email, AccessToken: "access"}, nil
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &auth.Session{UserID: "u1", Email: email, AccessToken: "access", ExpiresIn: 3600}, nil
}

func (f *fakeProvider) ResetPassword(ctx context.Context, email string) error {
	return nil
}

func (f *fakeProvider) SignOut(ctx context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return f.signOutErr
}

type fixture struct {
	router   *gin.Engine
	store    *store.Client
	gallery  *gallery.Store
	sessions *dashboard.Registry
	provider *fakeProvider
}

type fixtureOptions struct {
	backend   store.Backend
	generator http.HandlerFunc
	checks    map[string]handlers.HealthCheck
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.backend == nil {
		opts.backend = store.NewMemoryBackend()
	}
	if opts.generator == nil {
		opts.generator = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"operationStatus":"successful","fileId":"file-1"}`))
		}
	}
	srv := httptest.NewServer(opts.generator)
	t.Cleanup(srv.Close)

	var mu sync.Mutex
	clock := time.Now()
	tick := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Millisecond)
		return clock
	}

	projects := store.NewClient(opts.backend, nil, store.WithClock(tick))
	galleryStore := gallery.NewStore(&memBlob{data: map[string][]byte{}}, nil)
	generations := services.NewGenerationService(imagegen.NewClient(srv.URL, 5*time.Second), galleryStore, projects, nil, nil, nil)
	provider := &fakeProvider{}
	sessions := dashboard.NewRegistry()

	cfg := &config.Config{SupabaseJWTSecret: secret}
	r := router.New(cfg, nil, router.Handlers{
		Health:    handlers.NewHealthHandler(opts.checks),
		Auth:      handlers.NewAuthHandler(auth.NewService(provider, projects, nil), sessions),
		Projects:  handlers.NewProjectsHandler(projects, generations),
		Presets:   handlers.NewPresetsHandler(projects),
		Users:     handlers.NewUsersHandler(projects),
		Gallery:   handlers.NewGalleryHandler(projects, galleryStore, generations),
		Generate:  handlers.NewGenerateHandler(projects, generations),
		Dashboard: handlers.NewDashboardHandler(projects, sessions),
	})

	return &fixture{router: r, store: projects, gallery: galleryStore, sessions: sessions, provider: provider}
}

func token(t *testing.T, uid string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uid,
		"email": uid + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func (f *fixture) do(t *testing.T, method, path, uid string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, uid))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) multipart(t *testing.T, path, uid string, fields map[string]string, fileField string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token(t, uid))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (f *fixture) createProject(t *testing.T, uid, name string, tags ...string) models.Project {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/v1/projects", uid, map[string]any{"name": name, "tags": tags})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Project](t, w)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealth_Degraded(t *testing.T) {
	f := newFixture(t, fixtureOptions{checks: map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return errors.New("connection refused") },
		"gallery":  func(ctx context.Context) error { return nil },
	}})

	w := f.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[models.HealthResponse](t, w)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "connection refused", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["gallery"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	for _, path := range []string{"/api/v1/projects", "/api/v1/me", "/api/v1/dashboard/filters", "/api/v1/presets"} {
		w := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProjects_Lifecycle(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	created := f.createProject(t, "u1", "Spring Launch", "Design")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "", created.Client)
	assert.Equal(t, []string{"Design"}, created.Tags)
	assert.Equal(t, "u1", created.OwnerID)
	assert.Zero(t, created.TotalGenerations)

	second := f.createProject(t, "u1", "Summer")

	w := f.do(t, http.MethodGet, "/api/v1/projects", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.ProjectListResponse](t, w)
	require.Len(t, list.Projects, 2)
	assert.Equal(t, second.ID, list.Projects[0].ID)

	w = f.do(t, http.MethodPatch, "/api/v1/projects/"+created.ID, "u1", map[string]any{"name": "  Autumn  "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	renamed := decode[models.Project](t, w)
	assert.Equal(t, "Autumn", renamed.Name)
	assert.Greater(t, renamed.UpdatedAt, created.UpdatedAt)

	w = f.do(t, http.MethodPost, "/api/v1/projects/"+created.ID+"/archive", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Project](t, w).Archived)

	w = f.do(t, http.MethodGet, "/api/v1/projects?archived=true", "u1", nil)
	archived := decode[models.ProjectListResponse](t, w)
	require.Len(t, archived.Projects, 1)
	assert.Equal(t, created.ID, archived.Projects[0].ID)

	w = f.do(t, http.MethodDelete, "/api/v1/projects/"+created.ID, "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/projects/"+created.ID, "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProject_Validation(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodPost, "/api/v1/projects", "u1", map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/projects", "u1", map[string]any{"client": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_ForeignProjectIsNotFound(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.createProject(t, "u1", "Mine")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/projects/" + p.ID},
		{http.MethodDelete, "/api/v1/projects/" + p.ID},
		{http.MethodGet, "/api/v1/projects/" + p.ID + "/generations"},
		{http.MethodGet, "/api/v1/projects/" + p.ID + "/images"},
	} {
		w := f.do(t, tc.method, tc.path, "u2", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
	}

	w := f.do(t, http.MethodGet, "/api/v1/projects", "u2", nil)
	assert.Empty(t, decode[models.ProjectListResponse](t, w).Projects)
}

func TestListProjects_BackendFailure(t *testing.T) {
	f := newFixture(t, fixtureOptions{backend: failingBackend{store.NewMemoryBackend()}})

	w := f.do(t, http.MethodGet, "/api/v1/projects", "u1", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to load projects", decode[models.ErrorResponse](t, w).Error)
}

func TestPresets(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodPost, "/api/v1/presets", "u1", map[string]any{
		"category": "social", "platform": "Instagram", "content_type": "Post", "prompt": "Bold colours",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	preset := decode[models.PromptPreset](t, w)
	require.NotEmpty(t, preset.ID)

	f.do(t, http.MethodPost, "/api/v1/presets", "u1", map[string]any{"category": "ecom", "prompt": "Clean"})

	w = f.do(t, http.MethodGet, "/api/v1/presets?category=social", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.PresetListResponse](t, w)
	require.Len(t, list.Presets, 1)
	assert.Equal(t, "Bold colours", list.Presets[0].Prompt)

	w = f.do(t, http.MethodPatch, "/api/v1/presets/"+preset.ID, "u1", map[string]any{"prompt": "Muted"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPatch, "/api/v1/presets/"+preset.ID, "u2", map[string]any{"prompt": "Hijack"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/presets?category=print", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryPreset(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodGet, "/api/v1/presets/category/marketing", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/presets/category/marketing", "u1", map[string]any{"values": map[string]any{"tone": "playful"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPut, "/api/v1/presets/category/marketing", "u1", map[string]any{"values": map[string]any{"audience": "teens"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/presets/category/marketing", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.CategoryPreset](t, w)
	assert.Equal(t, map[string]any{"tone": "playful", "audience": "teens"}, got.Values)

	w = f.do(t, http.MethodGet, "/api/v1/presets/category/print", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodGet, "/api/v1/me", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode[models.AppUser](t, w)
	assert.Equal(t, "u1", me.UID)
	assert.Equal(t, "u1@example.com", me.Email)
	assert.Equal(t, models.ThemeLight, me.Theme)

	w = f.do(t, http.MethodPatch, "/api/v1/me", "u1", map[string]any{"display_name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decode[models.AppUser](t, w).DisplayName)

	w = f.do(t, http.MethodPut, "/api/v1/me/theme", "u1", map[string]any{"theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodPut, "/api/v1/me/theme", "u1", map[string]any{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/me/openrouter-key", "u1", map[string]any{"key": "  sk-or-123  "})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodGet, "/api/v1/me/openrouter-key", "u1", nil)
	assert.Equal(t, models.OpenRouterKeyResponse{Key: "sk-or-123", HasKey: true}, decode[models.OpenRouterKeyResponse](t, w))

	f.do(t, http.MethodPut, "/api/v1/me/openrouter-key", "u1", map[string]any{"key": " "})
	w = f.do(t, http.MethodGet, "/api/v1/me/openrouter-key", "u1", nil)
	assert.False(t, decode[models.OpenRouterKeyResponse](t, w).HasKey)

	w = f.do(t, http.MethodGet, "/api/v1/me", "u1", nil)
	me = decode[models.AppUser](t, w)
	assert.Equal(t, models.ThemeDark, me.Theme)
	assert.Equal(t, "Ada", me.DisplayName)
}

func TestDashboard_FilterFlow(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	design := f.createProject(t, "u1", "Logo refresh", "Design")
	f.createProject(t, "u1", "Survey", "Research")

	w := f.do(t, http.MethodGet, "/api/v1/dashboard/filters", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	filters := decode[models.DashboardFilters](t, w)
	assert.Equal(t, []string{"All"}, filters.Tags)
	assert.Equal(t, "newest", filters.DateSort)

	w = f.do(t, http.MethodGet, "/api/v1/dashboard/projects", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DashboardProjectsResponse](t, w)
	assert.Len(t, resp.Projects, 2)
	assert.ElementsMatch(t, []string{"Design", "Research"}, resp.Filters.AvailableTags)
	assert.False(t, resp.Stale)

	w = f.do(t, http.MethodPatch, "/api/v1/dashboard/filters", "u1", map[string]any{"tags": `["Design"]`, "date_sort": "7d"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	filters = decode[models.DashboardFilters](t, w)
	assert.Equal(t, []string{"Design"}, filters.Tags)
	assert.Equal(t, "7d", filters.DateSort)

	w = f.do(t, http.MethodGet, "/api/v1/dashboard/projects", "u1", nil)
	resp = decode[models.DashboardProjectsResponse](t, w)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, design.ID, resp.Projects[0].ID)

	w = f.do(t, http.MethodPost, "/api/v1/dashboard/tags/toggle", "u1", map[string]any{"tag": "Design"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"All"}, decode[models.DashboardFilters](t, w).Tags)

	w = f.do(t, http.MethodPatch, "/api/v1/dashboard/filters", "u1", map[string]any{"date_sort": "yesterday", "query": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = f.do(t, http.MethodGet, "/api/v1/dashboard/filters", "u1", nil)
	assert.Equal(t, "", decode[models.DashboardFilters](t, w).Query)

	// Filters are per user.
	w = f.do(t, http.MethodGet, "/api/v1/dashboard/filters", "u2", nil)
	assert.Equal(t, "newest", decode[models.DashboardFilters](t, w).DateSort)
}

func TestGenerate(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.createProject(t, "u1", "Launch")

	w := f.do(t, http.MethodPost, "/api/v1/projects/"+p.ID+"/generate", "u1", map[string]any{
		"operation_type": imagegen.OpBrandLogo,
		"fields":         map[string]string{"brandName": "Acme"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.GenerateResponse](t, w)
	assert.Equal(t, imagegen.DownloadURL("file-1"), resp.Output)
	assert.Equal(t, models.GenModeT2I, resp.Generation.Mode)
	require.Len(t, resp.Generation.Images, 1)

	w = f.do(t, http.MethodGet, "/api/v1/projects/"+p.ID, "u1", nil)
	assert.Equal(t, 1, decode[models.Project](t, w).TotalGenerations)

	w = f.do(t, http.MethodGet, "/api/v1/projects/"+p.ID+"/generations", "u1", nil)
	assert.Len(t, decode[models.GenerationListResponse](t, w).Generations, 1)
}

func TestGenerate_MultipartPhoto(t *testing.T) {
	var gotType string
	f := newFixture(t, fixtureOptions{generator: func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"operationStatus":"successful","output":"https://cdn.example.com/out.png"}`))
	}})
	p := f.createProject(t, "u1", "Shoot")

	w := f.multipart(t, "/api/v1/projects/"+p.ID+"/generate", "u1", map[string]string{
		"operation_type": imagegen.OpProductPhotography,
		"productName":    "Mug",
	}, "photo", pngBytes(t))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, gotType, "multipart/form-data")
	assert.Equal(t, models.GenModeI2I, decode[models.GenerateResponse](t, w).Generation.Mode)
}

func TestGenerate_Failures(t *testing.T) {
	f := newFixture(t, fixtureOptions{generator: func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}})
	p := f.createProject(t, "u1", "Launch")

	w := f.do(t, http.MethodPost, "/api/v1/projects/"+p.ID+"/generate", "u1", map[string]any{
		"operation_type": imagegen.OpBrandLogo,
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, handlers.GenerationFailedMessage, decode[models.ErrorResponse](t, w).Error)

	w = f.do(t, http.MethodPost, "/api/v1/projects/"+p.ID+"/generate", "u1", map[string]any{
		"operation_type": "Unknown Operation",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/projects/"+p.ID+"/generate", "u1", map[string]any{
		"operation_type": imagegen.OpProductPhotography,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/projects/"+p.ID+"/generations", "u1", nil)
	assert.Empty(t, decode[models.GenerationListResponse](t, w).Generations)
}

func TestListOperations(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodGet, "/api/v1/operations", "u1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	ops := decode[[]models.OperationInfo](t, w)
	assert.Len(t, ops, len(imagegen.Operations))
}

func TestGallery_ImageLifecycle(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.createProject(t, "u1", "Catalogue")
	base := "/api/v1/projects/" + p.ID

	w := f.do(t, http.MethodPost, base+"/generations", "u1", map[string]any{"prompt": "red mug on a desk", "mode": "i2i"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	gen := decode[models.LocalGeneration](t, w)
	assert.Empty(t, gen.Images)

	w = f.multipart(t, base+"/generations/"+gen.ID+"/images", "u1", nil, "image", pngBytes(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	withImage := decode[models.LocalGeneration](t, w)
	require.Len(t, withImage.Images, 1)
	assert.Contains(t, withImage.Images[0].DataURL, "data:image/png;base64,")
	assert.Contains(t, withImage.Images[0].ThumbURL, "data:image/jpeg;base64,")

	w = f.do(t, http.MethodPost, base+"/generations/"+gen.ID+"/images", "u1", map[string]any{
		"images": []map[string]any{{"data_url": "https://cdn.example.com/a.png"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, base+"/images?mode=i2i&q=mug", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[models.ImageListResponse](t, w).Images
	require.Len(t, rows, 2)
	assert.Equal(t, gen.ID, rows[0].GenID)

	w = f.do(t, http.MethodGet, base+"/images?mode=t2i", "u1", nil)
	assert.Empty(t, decode[models.ImageListResponse](t, w).Images)

	w = f.do(t, http.MethodGet, base+"/images?mode=video", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	imageID := withImage.Images[0].ID
	w = f.do(t, http.MethodDelete, base+"/generations/"+gen.ID+"/images/"+imageID, "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = f.do(t, http.MethodDelete, base+"/generations/"+gen.ID+"/images/"+imageID, "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, base+"/generations/"+gen.ID, "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodGet, base+"/generations", "u1", nil)
	assert.Empty(t, decode[models.GenerationListResponse](t, w).Generations)
}

func TestGallery_UnknownGeneration(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.createProject(t, "u1", "Catalogue")
	base := "/api/v1/projects/" + p.ID

	w := f.multipart(t, base+"/generations/missing/images", "u1", nil, "image", pngBytes(t))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, base+"/generations/missing/images", "u1", map[string]any{
		"images": []map[string]any{{"data_url": "https://cdn.example.com/a.png"}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, base+"/generations/missing", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGallery_RejectsNonImageUpload(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	p := f.createProject(t, "u1", "Catalogue")
	base := "/api/v1/projects/" + p.ID
	w := f.do(t, http.MethodPost, base+"/generations", "u1", map[string]any{"prompt": "x"})
	gen := decode[models.LocalGeneration](t, w)

	w = f.multipart(t, base+"/generations/"+gen.ID+"/images", "u1", nil, "image", []byte("not an image"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_SignInAndSignUp(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	w := f.do(t, http.MethodPost, "/api/v1/auth/signin", "", map[string]any{"email": "a@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "u1", decode[models.AuthResponse](t, w).UserID)

	f.provider.signInErr = auth.NewError(auth.CodeInvalidCredentials, nil)
	w = f.do(t, http.MethodPost, "/api/v1/auth/signin", "", map[string]any{"email": "a@example.com", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", decode[models.ErrorResponse](t, w).Error)

	w = f.do(t, http.MethodPost, "/api/v1/auth/signin", "", map[string]any{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{"name": "Ada", "email": "ada@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password is too weak. Use at least 6 characters.", decode[models.ErrorResponse](t, w).Error)

	w = f.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{"name": "Ada", "email": "ada@example.com", "password": "123456"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	user, err := f.store.GetUser(context.Background(), "new-user")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.DisplayName)
}

func TestAuth_SignOutResetsDashboard(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	before := f.sessions.Session("u1")

	w := f.do(t, http.MethodPost, "/api/v1/auth/signout", "u1", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, f.provider.signedOut, 1)
	assert.NotSame(t, before, f.sessions.Session("u1"))

	f.provider.signOutErr = errors.New("boom")
	w = f.do(t, http.MethodPost, "/api/v1/auth/signout", "u1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, auth.SignOutFailed, decode[models.ErrorResponse](t, w).Error)

	w = f.do(t, http.MethodPost, "/api/v1/auth/signout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
