package main

import (
	"errors"
	"moviehub/proj/internal/domain/filters"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services/movies"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

const (
	posterSize   = "w500"
	backdropSize = "original"

	catalogErrMsg = "Failed to load movies. Please try again later."
)

type movieView struct {
	models.Movie
	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
	Year        int    `json:"year,omitempty"`
	IsFavorite  bool   `json:"is_favorite"`
}

func (app *Application) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(app.cfg.Catalog.ImageBaseURL, "/") + "/" + size + path
}

func (app *Application) newMovieView(m models.Movie) movieView {
	return movieView{
		Movie:       m,
		PosterURL:   app.imageURL(posterSize, m.PosterPath),
		BackdropURL: app.imageURL(backdropSize, m.BackdropPath),
		Year:        m.Year(),
		IsFavorite:  app.Services.Favorites.IsFavorite(m.ID),
	}
}

func (app *Application) newMovieViews(list []models.Movie) []movieView {
	views := make([]movieView, 0, len(list))
	for _, m := range list {
		views = append(views, app.newMovieView(m))
	}
	return views
}

func (app *Application) movieDetailError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, movies.ErrMovieNotFound):
		app.Http.NotFound(w, r, "movie not found")
	default:
		app.Http.BadGateway(w, r, err, "Failed to load movie details. Please try again later.")
	}
}

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, struct {
		Status    string `json:"status"`
		Debug     bool   `json:"debug"`
		Version   string `json:"version"`
		Favorites int    `json:"favorites"`
	}{
		Status:    "available",
		Debug:     app.cfg.Debug,
		Version:   version,
		Favorites: app.Services.Favorites.Count(),
	})
}

func (app *Application) getPopularMovies(w http.ResponseWriter, r *http.Request) {
	list, err := app.Services.Movies.Popular(r.Context())
	if err != nil {
		app.Http.BadGateway(w, r, err, catalogErrMsg)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": app.newMovieViews(list)}, "")
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Query string `schema:"query"`
	}
	if err := app.decodeQuery(r, &params); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	list, err := app.Services.Movies.Search(r.Context(), params.Query)
	if err != nil {
		app.Http.BadGateway(w, r, err, catalogErrMsg)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": app.newMovieViews(list)}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	movie, err := app.Services.Movies.Get(r.Context(), id)
	if err != nil {
		app.movieDetailError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": app.newMovieView(*movie)}, "")
}

// toggleFavorite removes the movie from favorites or, when absent, fetches
// its details and adds it.
func (app *Application) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if app.Services.Favorites.Remove(id) {
		app.Http.Ok(w, r, envelop{"is_favorite": false}, "Removed from favorites")
		return
	}
	movie, err := app.Services.Movies.Get(r.Context(), id)
	if err != nil {
		app.movieDetailError(w, r, err)
		return
	}
	if _, err := app.Services.Favorites.Add(*movie); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"is_favorite": true}, "Added to favorites")
}

func (app *Application) listFavorites(w http.ResponseWriter, r *http.Request) {
	f := filters.Filters{Page: 1, PageSize: 20, SortSafelist: models.SortableFields}
	if err := app.decodeQuery(r, &f); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, &f); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	list := app.Services.Favorites.List()
	if f.Sort != "" {
		models.SortMovies(list, f.SortColumn(), f.SortDirection() == filters.DescSort)
	}
	start, end := f.Window(len(list))
	app.Http.Ok(w, r, envelop{
		"movies":   app.newMovieViews(list[start:end]),
		"metadata": filters.CalculateMetadata(len(list), f.Page, f.PageSize),
	}, "")
}

func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := app.readJSON(w, r, &movie); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, &movie); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	added, err := app.Services.Favorites.Add(movie)
	if err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !added {
		app.Http.Ok(w, r, envelop{"movie": app.newMovieView(movie)}, "Already in favorites")
		return
	}
	app.Http.Created(w, r, envelop{"movie": app.newMovieView(movie)}, "Added to favorites")
}

func (app *Application) isFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	app.Http.Ok(w, r, envelop{"is_favorite": app.Services.Favorites.IsFavorite(id)}, "")
}

func (app *Application) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if !app.Services.Favorites.Remove(id) {
		app.Http.Ok(w, r, envelop{"is_favorite": false}, "Not in favorites")
		return
	}
	app.Http.Ok(w, r, envelop{"is_favorite": false}, "Removed from favorites")
}

func (app *Application) getSearchState(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"search": app.Services.Search.State()}, "")
}

func (app *Application) setSearchQuery(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Query string `json:"query" validate:"max=500"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, &input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	app.Services.Search.SetQuery(input.Query)
	app.Http.Ok(w, r, envelop{"search": app.Services.Search.State()}, "")
}

func (app *Application) submitSearch(w http.ResponseWriter, r *http.Request) {
	app.Services.Search.Submit()
	app.Http.Ok(w, r, envelop{"search": app.Services.Search.State()}, "")
}
