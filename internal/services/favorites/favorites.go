package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/storage"
	"slices"
	"sync"
	"time"
)

const DefaultStorageKey = "favorites"

type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type EventKind string

const (
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
)

// Event describes one mutation. Favorites is a snapshot of the list right
// after it, owned by the listener.
type Event struct {
	Kind      EventKind
	MovieID   int
	Favorites []models.Movie
}

type Listener func(Event)

type Store struct {
	log       *slog.Logger
	// writeMu serializes mutations together with their notifications,
	// so listeners observe events in mutation order.
	writeMu   sync.Mutex
	mu        sync.RWMutex
	favorites []models.Movie
	listeners map[uint64]Listener
	nextID    uint64
}

func New(log *slog.Logger) *Store {
	return &Store{
		log:       log,
		favorites: []models.Movie{},
		listeners: make(map[uint64]Listener),
	}
}

/*
Open builds a Store from the list persisted under key and keeps it
persisted: every later mutation re-serializes the whole list to storage.

A missing, unreadable or malformed payload is logged and the store starts
empty. Nothing is written to storage until the load has finished.
*/
func Open(ctx context.Context, log *slog.Logger, st Storage, key string, saveTimeout time.Duration) *Store {
	s := New(log)
	s.load(ctx, st, key)
	s.Subscribe(persister(log, st, key, saveTimeout))
	return s
}

func (s *Store) load(ctx context.Context, st Storage, key string) {
	const op = "favorites.Store.load"
	log := s.log.With("op", op, "key", key)
	raw, err := st.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("no stored favorites, starting empty")
			return
		}
		log.Error("Failed to read favorites from storage", "errMsg", err.Error())
		return
	}
	var stored []models.Movie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Error("Failed to parse favorites from storage", "errMsg", err.Error())
		return
	}
	seen := make(map[int]struct{}, len(stored))
	loaded := make([]models.Movie, 0, len(stored))
	for _, movie := range stored {
		if movie.ID < 1 {
			continue
		}
		if _, ok := seen[movie.ID]; ok {
			continue
		}
		seen[movie.ID] = struct{}{}
		loaded = append(loaded, movie)
	}
	s.mu.Lock()
	s.favorites = loaded
	s.mu.Unlock()
	log.Info("favorites loaded", "count", len(loaded))
}

func persister(log *slog.Logger, st Storage, key string, timeout time.Duration) Listener {
	const op = "favorites.persister"
	log = log.With("op", op, "key", key)
	return func(e Event) {
		data, err := json.Marshal(e.Favorites)
		if err != nil {
			log.Error("Failed to serialize favorites", "errMsg", err.Error())
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := st.Set(ctx, key, string(data)); err != nil {
			log.Error("Failed to save favorites to storage", "errMsg", err.Error())
			return
		}
		log.Debug("favorites saved", "count", len(e.Favorites))
	}
}

// Add appends movie unless a favorite with the same id exists.
// Reports whether the list changed.
func (s *Store) Add(movie models.Movie) (bool, error) {
	const op = "favorites.Store.Add"
	log := s.log.With("op", op, "id", movie.ID)
	if movie.ID < 1 {
		return false, ErrInvalidMovie
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.indexOf(movie.ID) >= 0 {
		s.mu.Unlock()
		log.Debug("movie already in favorites")
		return false, nil
	}
	s.favorites = append(s.favorites, movie)
	snapshot := slices.Clone(s.favorites)
	s.mu.Unlock()

	log.Info("favorite added", "title", movie.Title)
	s.emit(Event{Kind: EventAdded, MovieID: movie.ID, Favorites: snapshot})
	return true, nil
}

// Remove drops the favorite with the given id, reporting whether it existed.
func (s *Store) Remove(id int) bool {
	const op = "favorites.Store.Remove"
	log := s.log.With("op", op, "id", id)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		log.Debug("movie not in favorites")
		return false
	}
	s.favorites = slices.Delete(slices.Clone(s.favorites), i, i+1)
	snapshot := slices.Clone(s.favorites)
	s.mu.Unlock()

	log.Info("favorite removed")
	s.emit(Event{Kind: EventRemoved, MovieID: id, Favorites: snapshot})
	return true
}

func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

// Subscribe registers l for change events and returns a function that
// unregisters it. Listeners run synchronously after each mutation and may
// call the read methods, but must not mutate the store.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(e Event) {
	s.mu.RLock()
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.RUnlock()
	for _, l := range listeners {
		l(Event{Kind: e.Kind, MovieID: e.MovieID, Favorites: slices.Clone(e.Favorites)})
	}
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.favorites, func(m models.Movie) bool { return m.ID == id })
}
