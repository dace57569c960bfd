package tmdb

import "errors"

var (
	ErrNetwork  = errors.New("catalog request failed")
	ErrParse    = errors.New("unexpected catalog response")
	ErrNotFound = errors.New("not found in catalog")
)
