package models

import (
	"moviehub/proj/internal/domain/fields"
	"time"
)

const releaseDateLayout = "2006-01-02"

// SortableFields lists the JSON field names a movie listing can be sorted by.
var SortableFields = []string{"id", "title", "release_date", "vote_average"}

// Movie is a catalog entry. List and search endpoints return the summary
// fields only; the detail endpoint fills the rest.
type Movie struct {
	ID           int     `json:"id" validate:"required,gt=0"`           // Catalog-wide unique ID
	Title        string  `json:"title" validate:"required,max=500"`     // Movie title
	PosterPath   string  `json:"poster_path"`                            // Relative poster image path
	BackdropPath string  `json:"backdrop_path,omitempty"`                // Relative backdrop image path
	ReleaseDate  string  `json:"release_date" validate:"omitempty,isodate"` // ISO date, e.g. 2010-07-15
	VoteAverage  float64 `json:"vote_average" validate:"gte=0,lte=10"`   // Average vote (0.0 - 10.0)

	Runtime             fields.MovieRuntime `json:"runtime,omitempty"` // Runtime (in minutes), detail only
	Overview            string              `json:"overview,omitempty"`
	Genres              []Genre             `json:"genres,omitempty"`
	ProductionCompanies []Company           `json:"production_companies,omitempty"`
	Budget              int64               `json:"budget,omitempty"`
	Revenue             int64               `json:"revenue,omitempty"`
	OriginalLanguage    string              `json:"original_language,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HasDetails reports whether the movie carries any detail-only field.
func (m *Movie) HasDetails() bool {
	return m.Runtime > 0 ||
		len(m.Genres) > 0 ||
		len(m.ProductionCompanies) > 0 ||
		m.Budget > 0 ||
		m.Revenue > 0 ||
		m.OriginalLanguage != ""
}

// Year returns the release year or 0 if the release date is unknown.
func (m *Movie) Year() int {
	if m.ReleaseDate == "" {
		return 0
	}
	t, err := time.Parse(releaseDateLayout, m.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}
