package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"moviehub/proj/internal/domain/models"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const maxResponseBytes = 4 << 20

type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
	apiKey  string
}

/*
New creates a catalog client for a TMDB-compatible API.

baseURL is the API root (e.g. https://api.themoviedb.org/3), apiKey is sent
as the api_key query parameter and timeout bounds every request.
Requests are never retried.
*/
func New(log *slog.Logger, baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type listEnvelope struct {
	Results *[]models.Movie `json:"results"`
}

func (c *Client) FetchPopular(ctx context.Context) ([]models.Movie, error) {
	const op = "tmdb.Client.FetchPopular"
	log := c.log.With("op", op)
	movies, err := c.getList(ctx, "/movie/popular", nil)
	if err != nil {
		log.Error("Error fetching popular movies", "errMsg", err.Error())
		return nil, err
	}
	return movies, nil
}

// SearchByTitle returns the movies matching query in the catalog's own
// order. A blank query yields an empty result without a remote call.
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	const op = "tmdb.Client.SearchByTitle"
	log := c.log.With("op", op, "query", query)
	if strings.TrimSpace(query) == "" {
		log.Debug("blank query, skipping remote call")
		return []models.Movie{}, nil
	}
	movies, err := c.getList(ctx, "/search/movie", url.Values{"query": {query}})
	if err != nil {
		log.Error("Error searching movies", "errMsg", err.Error())
		return nil, err
	}
	return movies, nil
}

func (c *Client) FetchDetail(ctx context.Context, id int) (*models.Movie, error) {
	const op = "tmdb.Client.FetchDetail"
	log := c.log.With("op", op, "id", id)
	if id < 1 {
		return nil, ErrNotFound
	}
	body, err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("Error fetching movie detail", "errMsg", err.Error())
		}
		return nil, err
	}
	var movie models.Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		log.Error("Error decoding movie detail", "errMsg", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if movie.ID == 0 {
		return nil, fmt.Errorf("%w: movie document has no id", ErrParse)
	}
	return &movie, nil
}

func (c *Client) getList(ctx context.Context, path string, params url.Values) ([]models.Movie, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if envelope.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrParse)
	}
	return *envelope.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNetwork, redactKey(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}
	return body, nil
}

// redactKey keeps the api key out of transport errors, which embed the URL.
func redactKey(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "REDACTED")
}
