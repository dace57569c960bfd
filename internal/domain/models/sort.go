package models

import (
	"cmp"
	"slices"
	"strings"
)

// SortMovies stably sorts movies in place by one of SortableFields.
// Unknown columns leave the order untouched.
func SortMovies(movies []Movie, column string, desc bool) {
	var compare func(a, b *Movie) int
	switch column {
	case "id":
		compare = func(a, b *Movie) int { return cmp.Compare(a.ID, b.ID) }
	case "title":
		compare = func(a, b *Movie) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case "release_date":
		compare = func(a, b *Movie) int { return strings.Compare(a.ReleaseDate, b.ReleaseDate) }
	case "vote_average":
		compare = func(a, b *Movie) int { return cmp.Compare(a.VoteAverage, b.VoteAverage) }
	default:
		return
	}
	slices.SortStableFunc(movies, func(a, b Movie) int {
		if desc {
			return compare(&b, &a)
		}
		return compare(&a, &b)
	})
}
