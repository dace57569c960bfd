package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.Http.Response(w, r, nil, "", http.StatusMethodNotAllowed)
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Get("/ws", app.liveUpdates)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/popular", app.getPopularMovies)
			r.Get("/search", app.searchMovies)
			r.Get("/{id}", app.getMovie)
			r.Post("/{id}/favorite", app.toggleFavorite)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", app.listFavorites)
			r.Post("/", app.addFavorite)
			r.Get("/{id}", app.isFavorite)
			r.Delete("/{id}", app.removeFavorite)
		})
		r.Route("/search", func(r chi.Router) {
			r.Get("/", app.getSearchState)
			r.Put("/", app.setSearchQuery)
			r.Post("/submit", app.submitSearch)
		})
	})
	return router
}
