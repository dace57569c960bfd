package services

import (
	"context"
	"log/slog"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/lib/scheduler"
	"moviehub/proj/internal/storage/memory"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct{}

func (stubCatalog) FetchPopular(ctx context.Context) ([]models.Movie, error) {
	return []models.Movie{{ID: 1, Title: "Popular"}}, nil
}

func (stubCatalog) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	return []models.Movie{{ID: 2, Title: query}}, nil
}

func (stubCatalog) FetchDetail(ctx context.Context, id int) (*models.Movie, error) {
	return &models.Movie{ID: id, Title: "Detail"}, nil
}

type inlineExecutor struct{}

func (inlineExecutor) Add(task func()) bool {
	task()
	return true
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Storage: config.Storage{Key: "favorites", SaveTimeout: time.Second},
		Search:  config.Search{Debounce: 10 * time.Millisecond},
		Catalog: config.Catalog{Timeout: time.Second},
	}
	st := memory.New()
	svc := New(ctx, slog.Default(), cfg, stubCatalog{}, st, scheduler.New(slog.Default()), inlineExecutor{})
	defer svc.Close()

	_, err := svc.Favorites.Add(models.Movie{ID: 603, Title: "The Matrix"})
	require.NoError(t, err)
	raw, err := st.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":603`)

	svc.Search.SetQuery("matrix")
	svc.Search.Submit()
	assert.Equal(t, "matrix", svc.Search.State().Results[0].Title)

	popular, err := svc.Movies.Popular(ctx)
	require.NoError(t, err)
	assert.Len(t, popular, 1)
}
