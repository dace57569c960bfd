package search

import (
	"context"
	"log/slog"
	"moviehub/proj/internal/domain/models"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	FailureMessage  = "Failed to search movies. Please try again later."

	debounceKey = "search"
)

type Searcher interface {
	SearchByTitle(ctx context.Context, query string) ([]models.Movie, error)
}

type TaskScheduler interface {
	Schedule(key string, delay time.Duration, task func()) bool
	Cancel(key string) bool
	Stop()
}

type TaskExecutor interface {
	Add(task func()) bool
}

// State is a snapshot of the controller. Loading is true while the
// current query's search is in flight.
type State struct {
	Query   string         `json:"query"`
	Results []models.Movie `json:"results"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

type Listener func(State)

type Controller struct {
	log       *slog.Logger
	searcher  Searcher
	scheduler TaskScheduler
	executor  TaskExecutor
	delay     time.Duration
	timeout   time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     State
	seq       uint64 // id of the latest dispatched search
	closed    bool
	listeners map[uint64]Listener
	nextID    uint64
}

func New(
	log *slog.Logger,
	searcher Searcher,
	scheduler TaskScheduler,
	executor TaskExecutor,
	delay time.Duration,
	timeout time.Duration,
) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		log:       log,
		searcher:  searcher,
		scheduler: scheduler,
		executor:  executor,
		delay:     delay,
		timeout:   timeout,
		ctx:       ctx,
		cancel:    cancel,
		state:     State{Results: []models.Movie{}},
		listeners: make(map[uint64]Listener),
	}
}

// SetQuery records query and restarts the debounce delay. A blank query
// cancels the pending search and clears the results.
func (c *Controller) SetQuery(query string) {
	const op = "search.Controller.SetQuery"
	log := c.log.With("op", op, "query", query)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Query = query
	if isBlank(query) {
		c.scheduler.Cancel(debounceKey)
		c.seq++
		c.state.Results = []models.Movie{}
		c.state.Error = ""
		c.state.Loading = false
		snapshot := c.snapshot()
		c.mu.Unlock()
		c.emit(snapshot)
		return
	}
	c.scheduler.Schedule(debounceKey, c.delay, func() { c.dispatch(query) })
	snapshot := c.snapshot()
	c.mu.Unlock()
	log.Debug("search scheduled", "delay", c.delay)
	c.emit(snapshot)
}

// Submit searches the current query right away, dropping any pending
// debounced search.
func (c *Controller) Submit() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.scheduler.Cancel(debounceKey)
	query := c.state.Query
	c.mu.Unlock()
	c.dispatch(query)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe registers l for state changes and returns a function that
// unregisters it. Listeners must not block.
func (c *Controller) Subscribe(l Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Close cancels the pending search and abandons in-flight ones.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.scheduler.Cancel(debounceKey)
	c.mu.Unlock()
	c.cancel()
}

func (c *Controller) dispatch(query string) {
	const op = "search.Controller.dispatch"
	log := c.log.With("op", op, "query", query)
	if isBlank(query) {
		return
	}
	c.mu.Lock()
	if c.closed || c.state.Query != query {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.state.Loading = true
	snapshot := c.snapshot()
	c.mu.Unlock()
	c.emit(snapshot)

	log.Debug("dispatching search", "seq", seq)
	ok := c.executor.Add(func() {
		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		movies, err := c.searcher.SearchByTitle(ctx, query)
		c.complete(seq, query, movies, err)
	})
	if !ok {
		c.complete(seq, query, nil, context.Canceled)
	}
}

func (c *Controller) complete(seq uint64, query string, movies []models.Movie, err error) {
	const op = "search.Controller.complete"
	log := c.log.With("op", op, "query", query, "seq", seq)
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		log.Debug("discarding stale search result")
		return
	}
	c.state.Loading = false
	switch {
	case c.state.Query != query:
		log.Debug("query changed while searching, result not applied")
	case err != nil:
		log.Error("search failed", "errMsg", err.Error())
		c.state.Error = FailureMessage
	default:
		if movies == nil {
			movies = []models.Movie{}
		}
		c.state.Results = movies
		c.state.Error = ""
	}
	snapshot := c.snapshot()
	c.mu.Unlock()
	c.emit(snapshot)
}

func (c *Controller) snapshot() State {
	s := c.state
	s.Results = slices.Clone(c.state.Results)
	return s
}

func (c *Controller) emit(s State) {
	c.mu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()
	for _, l := range listeners {
		l(s)
	}
}

func isBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}
