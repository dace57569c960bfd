package models

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieYear(t *testing.T) {
	assert.Equal(t, 2010, (&Movie{ReleaseDate: "2010-07-15"}).Year())
	assert.Equal(t, 0, (&Movie{}).Year())
	assert.Equal(t, 0, (&Movie{ReleaseDate: "soon"}).Year())
}

func TestMovieHasDetails(t *testing.T) {
	summary := Movie{ID: 27205, Title: "Inception", VoteAverage: 8.4}
	assert.False(t, summary.HasDetails())
	detail := summary
	detail.Runtime = 148
	detail.Genres = []Genre{{ID: 28, Name: "Action"}}
	assert.True(t, detail.HasDetails())
}

func TestSortMovies(t *testing.T) {
	base := []Movie{
		{ID: 3, Title: "inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4},
		{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25", VoteAverage: 8.1},
		{ID: 2, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 8.4},
	}
	ids := func(movies []Movie) []int {
		res := make([]int, len(movies))
		for i, m := range movies {
			res[i] = m.ID
		}
		return res
	}
	tests := []struct {
		column string
		desc   bool
		want   []int
	}{
		{"id", false, []int{1, 2, 3}},
		{"title", false, []int{1, 2, 3}},
		{"release_date", true, []int{3, 2, 1}},
		{"vote_average", true, []int{3, 2, 1}},
		{"vote_average", false, []int{1, 3, 2}},
		{"unknown", false, []int{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			movies := slices.Clone(base)
			SortMovies(movies, tt.column, tt.desc)
			assert.Equal(t, tt.want, ids(movies))
		})
	}
}
