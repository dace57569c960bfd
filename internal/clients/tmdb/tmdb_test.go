package tmdb

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

const popularBody = `{
	"page": 1,
	"results": [
		{"id": 27205, "title": "Inception", "poster_path": "/inception.jpg", "release_date": "2010-07-15", "vote_average": 8.4, "genre_ids": [28]},
		{"id": 603, "title": "The Matrix", "poster_path": "/matrix.jpg", "release_date": "1999-03-30", "vote_average": 8.2}
	],
	"total_pages": 1,
	"total_results": 2
}`

const detailBody = `{
	"id": 27205,
	"title": "Inception",
	"poster_path": "/inception.jpg",
	"backdrop_path": "/inception-bg.jpg",
	"release_date": "2010-07-15",
	"vote_average": 8.4,
	"runtime": 148,
	"overview": "A thief who steals corporate secrets...",
	"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
	"production_companies": [{"id": 923, "name": "Legendary Pictures"}],
	"budget": 160000000,
	"revenue": 839030630,
	"original_language": "en"
}`

type catalogStub struct {
	calls atomic.Int32
}

func newCatalog(t *testing.T, handler http.HandlerFunc) (*Client, *catalogStub) {
	t.Helper()
	stub := &catalogStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls.Add(1)
		assert.Equal(t, testAPIKey, r.URL.Query().Get("api_key"))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(slog.Default(), srv.URL+"/3/", testAPIKey, time.Second), stub
}

func TestFetchPopular(t *testing.T) {
	client, stub := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/popular", r.URL.Path)
		w.Write([]byte(popularBody))
	})
	movies, err := client.FetchPopular(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, 27205, movies[0].ID)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, 8.4, movies[0].VoteAverage)
	assert.Equal(t, 603, movies[1].ID)
	assert.False(t, movies[0].HasDetails())
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestSearchByTitle(t *testing.T) {
	t.Run("encodes query", func(t *testing.T) {
		client, _ := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/3/search/movie", r.URL.Path)
			assert.Equal(t, "matrix & co", r.URL.Query().Get("query"))
			w.Write([]byte(popularBody))
		})
		movies, err := client.SearchByTitle(context.Background(), "matrix & co")
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})
	t.Run("blank query short-circuits", func(t *testing.T) {
		client, stub := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(popularBody))
		})
		for _, q := range []string{"", "   ", "\t\n"} {
			movies, err := client.SearchByTitle(context.Background(), q)
			require.NoError(t, err)
			assert.NotNil(t, movies)
			assert.Empty(t, movies)
		}
		assert.Equal(t, int32(0), stub.calls.Load())
	})
	t.Run("empty results", func(t *testing.T) {
		client, _ := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"page":1,"results":[]}`))
		})
		movies, err := client.SearchByTitle(context.Background(), "zzzz")
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}

func TestFetchDetail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, _ := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/3/movie/27205", r.URL.Path)
			w.Write([]byte(detailBody))
		})
		movie, err := client.FetchDetail(context.Background(), 27205)
		require.NoError(t, err)
		assert.Equal(t, "Inception", movie.Title)
		assert.EqualValues(t, 148, movie.Runtime)
		assert.Len(t, movie.Genres, 2)
		assert.Equal(t, "Legendary Pictures", movie.ProductionCompanies[0].Name)
		assert.Equal(t, int64(160000000), movie.Budget)
		assert.Equal(t, "en", movie.OriginalLanguage)
		assert.True(t, movie.HasDetails())
	})
	t.Run("not found", func(t *testing.T) {
		client, _ := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`))
		})
		movie, err := client.FetchDetail(context.Background(), 999999999)
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("non positive id", func(t *testing.T) {
		client, stub := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := client.FetchDetail(context.Background(), 0)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, int32(0), stub.calls.Load())
	})
}

func TestErrors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		client, _ := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>oops</html>"))
		})
		_, err := client.FetchPopular(context.Background())
		assert.ErrorIs(t, err, ErrParse)
		_, err = client.FetchDetail(context.Background(), 1)
		assert.ErrorIs(t, err, ErrParse)
	})
	t.Run("missing results", func(t *testing.T) {
		client, _ := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"page":1}`))
		})
		_, err := client.SearchByTitle(context.Background(), "inception")
		assert.ErrorIs(t, err, ErrParse)
	})
	t.Run("server error", func(t *testing.T) {
		client, stub := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.FetchPopular(context.Background())
		assert.ErrorIs(t, err, ErrNetwork)
		assert.Equal(t, int32(1), stub.calls.Load(), "requests are not retried")
	})
	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		client := New(slog.Default(), srv.URL, "secret-key", time.Second)
		_, err := client.SearchByTitle(context.Background(), "inception")
		assert.ErrorIs(t, err, ErrNetwork)
		assert.NotContains(t, err.Error(), "secret-key")
	})
}
