package movies

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrCatalogUnavailable = errors.New("movie catalog is unavailable")
)
