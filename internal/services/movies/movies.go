package movies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/domain/models"
)

type Catalog interface {
	FetchPopular(ctx context.Context) ([]models.Movie, error)
	SearchByTitle(ctx context.Context, query string) ([]models.Movie, error)
	FetchDetail(ctx context.Context, id int) (*models.Movie, error)
}

type MovieService struct {
	log     *slog.Logger
	catalog Catalog
}

func New(log *slog.Logger, catalog Catalog) *MovieService {
	return &MovieService{
		log:     log,
		catalog: catalog,
	}
}

func (s *MovieService) Get(ctx context.Context, id int) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.catalog.FetchDetail(ctx, id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return movie, nil
}

func (s *MovieService) Popular(ctx context.Context) ([]models.Movie, error) {
	const op = "movies.MovieService.Popular"
	log := s.log.With("op", op)
	movies, err := s.catalog.FetchPopular(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return movies, nil
}

func (s *MovieService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	const op = "movies.MovieService.Search"
	log := s.log.With("op", op, "query", query)
	movies, err := s.catalog.SearchByTitle(ctx, query)
	if err != nil {
		log.Error(err.Error())
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return movies, nil
}
