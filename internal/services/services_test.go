package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio_site/internal/models"
	"portfolio_site/internal/ui/contact"
)

func writeContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	projects := `{"data":[
		{"slug":"b","title":"B","sort_order":2},
		{"slug":"a","title":"A","sort_order":1},
		{"slug":"f","title":"F","sort_order":9,"featured":true}
	]}`
	studies := `{"data":[
		{"institution":"Later U","degree":"MSc","start":"2023","end":"Present","sort_order":2},
		{"institution":"First U","degree":"BSc","start":"2019","end":"2023","sort_order":1}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsFile), []byte(projects), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StudiesFile), []byte(studies), 0o644))
	return dir
}

func TestContentServiceOrdering(t *testing.T) {
	svc := NewContentService(NewFileContent(writeContent(t)), nil, 0, zap.NewNop())
	ctx := context.Background()

	projects, err := svc.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, []string{"f", "a", "b"}, []string{projects[0].Slug, projects[1].Slug, projects[2].Slug})

	studies, err := svc.Studies(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First U", studies[0].Institution)

	p, s, err := svc.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, p)
	assert.Equal(t, 2, s)
	assert.NoError(t, svc.Invalidate(ctx))
}

func TestFileContentErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFileContent(dir).Projects(context.Background())
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, StudiesFile), []byte("{not json"), 0o644))
	_, err = NewFileContent(dir).Studies(context.Background())
	assert.ErrorContains(t, err, "parsing")

	_, _, err = LoadAll(context.Background(), NewFileContent(dir))
	assert.Error(t, err)
}

func TestLoadAll(t *testing.T) {
	projects, studies, err := LoadAll(context.Background(), NewFileContent(writeContent(t)))
	require.NoError(t, err)
	assert.Len(t, projects, 3)
	assert.Len(t, studies, 2)
}

func TestGetOrSetWithoutCache(t *testing.T) {
	calls := 0
	v, err := GetOrSet[int](nil, context.Background(), "k", 0, func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)

	_, err = GetOrSet[[]models.Project](nil, context.Background(), "k", 0, func() ([]models.Project, error) {
		return nil, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("**Go** service\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>Go</strong>")
	assert.False(t, strings.Contains(string(html), "<script>"))
}

func TestFormRelay(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.FormValue("name")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	relay := NewFormRelay(srv.URL, srv.Client(), zap.NewNop())
	require.True(t, relay.Enabled())

	o := relay.Relay(context.Background(), contact.Draft{Name: " Alice ", Email: "a@b.co", Message: "1234567890"})
	assert.Equal(t, contact.OutcomeSuccess, o.Kind)
	assert.Equal(t, "Alice", got)

	disabled := NewFormRelay("", nil, zap.NewNop())
	assert.False(t, disabled.Enabled())
	assert.Equal(t, contact.OutcomeNotConfigured, disabled.Relay(context.Background(), contact.Draft{}).Kind)
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := NewRedisCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestGetOrSetUsesCache(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func() ([]models.Project, error) {
		calls++
		return []models.Project{{Slug: "a", Title: "A"}}, nil
	}

	got, err := GetOrSet(cache, ctx, "content:projects", time.Minute, load)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, mr.Exists("content:projects"))
	assert.Equal(t, time.Minute, mr.TTL("content:projects"))

	got, err = GetOrSet(cache, ctx, "content:projects", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, 1, calls, "second read is served from the cache")

	require.NoError(t, cache.Delete(ctx, "content:projects"))
	_, err = GetOrSet(cache, ctx, "content:projects", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrSetDoesNotCacheErrors(t *testing.T) {
	cache, mr := newTestCache(t)

	_, err := GetOrSet(cache, context.Background(), "k", time.Minute, func() (int, error) {
		return 0, errors.New("store down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestIncrementWindow(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	key := "ratelimit:contact:9.9.9.9"

	n, err := cache.IncrementWindow(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(30 * time.Minute)
	n, err = cache.IncrementWindow(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	// the window is not extended by later hits
	assert.Equal(t, 30*time.Minute, mr.TTL(key))

	mr.FastForward(31 * time.Minute)
	n, err = cache.IncrementWindow(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "a new window starts after expiry")
}

func TestContentServiceInvalidate(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	svc := NewContentService(NewFileContent(writeContent(t)), cache, time.Minute, zap.NewNop())

	projects, studies, err := svc.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, projects)
	assert.Equal(t, 2, studies)
	assert.True(t, mr.Exists(cacheKeyProjects))
	assert.True(t, mr.Exists(cacheKeyStudies))

	require.NoError(t, svc.Invalidate(ctx))
	assert.False(t, mr.Exists(cacheKeyProjects))
	assert.False(t, mr.Exists(cacheKeyStudies))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "content.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, zap.NewNop()))
	return db
}

func TestDBContentUpsert(t *testing.T) {
	db := newTestDB(t)
	store := NewDBContent(db)
	ctx := context.Background()

	projects, studies, err := LoadAll(ctx, NewFileContent(writeContent(t)))
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, projects, studies))

	// same natural keys, new values
	edited := []models.Project{{Slug: "a", Title: "A v2", SortOrder: 1}}
	editedStudies := []models.StudyExperience{{Institution: "First U", Degree: "BSc", Start: "2019", End: "2022", SortOrder: 1}}
	require.NoError(t, store.Upsert(ctx, edited, editedStudies))

	gotProjects, err := store.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, gotProjects, 3, "upsert must not duplicate rows")
	assert.Equal(t, "a", gotProjects[0].Slug)
	assert.Equal(t, "A v2", gotProjects[0].Title)

	gotStudies, err := store.Studies(ctx)
	require.NoError(t, err)
	require.Len(t, gotStudies, 2)
	assert.Equal(t, "First U", gotStudies[0].Institution)
	assert.Equal(t, "2022", gotStudies[0].End)

	// a different degree at the same institution is a new row
	require.NoError(t, store.Upsert(ctx, nil, []models.StudyExperience{{Institution: "First U", Degree: "PhD", SortOrder: 3}}))
	gotStudies, err = store.Studies(ctx)
	require.NoError(t, err)
	assert.Len(t, gotStudies, 3)
}
