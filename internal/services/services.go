package services

import (
	"context"
	"log/slog"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/services/favorites"
	"moviehub/proj/internal/services/movies"
	"moviehub/proj/internal/services/search"
)

// Services is the application context handed to the view layer. Every
// component is constructed here and passed down explicitly.
type Services struct {
	Movies    *movies.MovieService
	Favorites *favorites.Store
	Search    *search.Controller
}

type Catalog interface {
	movies.Catalog
}

func New(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	catalog Catalog,
	storage favorites.Storage,
	scheduler search.TaskScheduler,
	taskExecutor search.TaskExecutor,
) *Services {
	favoritesStore := favorites.Open(ctx, log, storage, cfg.Storage.Key, cfg.Storage.SaveTimeout)
	favoritesStore.Subscribe(func(e favorites.Event) {
		log.Debug("favorites changed", "event", e.Kind, "id", e.MovieID, "count", len(e.Favorites))
	})
	searchController := search.New(log, catalog, scheduler, taskExecutor, cfg.Search.Debounce, cfg.Catalog.Timeout)
	searchController.Subscribe(func(s search.State) {
		log.Debug("search state changed", "query", s.Query, "loading", s.Loading, "results", len(s.Results), "error", s.Error)
	})
	return &Services{
		Movies:    movies.New(log, catalog),
		Favorites: favoritesStore,
		Search:    searchController,
	}
}

func (s *Services) Close() {
	s.Search.Close()
}
