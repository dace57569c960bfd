package main

import (
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/services/favorites"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialLiveUpdates(t *testing.T, app *Application) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, match func(wsMessage) bool) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var m wsMessage
		require.NoError(t, conn.ReadJSON(&m))
		if match(m) {
			return m
		}
	}
}

func TestLiveUpdates(t *testing.T) {
	app := NewTestApplication(t, newTestCatalog(t))
	conn := dialLiveUpdates(t, app)

	initial := readUntil(t, conn, func(m wsMessage) bool { return m.Type == "search" })
	require.NotNil(t, initial.Search)
	assert.Empty(t, initial.Search.Query)

	t.Run("query is debounced and results pushed", func(t *testing.T) {
		for _, q := range []string{"m", "ma", "matrix"} {
			require.NoError(t, conn.WriteJSON(wsCommand{Type: "query", Query: q}))
		}
		m := readUntil(t, conn, func(m wsMessage) bool {
			return m.Type == "search" && !m.Search.Loading && len(m.Search.Results) > 0
		})
		assert.Equal(t, "matrix", m.Search.Query)
		assert.Equal(t, "matrix", m.Search.Results[0].Title)
	})
	t.Run("submit", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(wsCommand{Type: "query", Query: "heat"}))
		require.NoError(t, conn.WriteJSON(wsCommand{Type: "submit"}))
		m := readUntil(t, conn, func(m wsMessage) bool {
			return m.Type == "search" && len(m.Search.Results) > 0 && m.Search.Results[0].Title == "heat"
		})
		assert.Empty(t, m.Search.Error)
	})
	t.Run("favorites changes", func(t *testing.T) {
		_, err := app.Services.Favorites.Add(models.Movie{ID: 603, Title: "The Matrix"})
		require.NoError(t, err)
		m := readUntil(t, conn, func(m wsMessage) bool { return m.Type == "favorites" })
		assert.Equal(t, favorites.EventAdded, m.Favorites.Event)
		assert.Equal(t, 603, m.Favorites.MovieID)
		assert.Equal(t, 1, m.Favorites.Count)
	})
	t.Run("unknown command", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(wsCommand{Type: "rewind"}))
		m := readUntil(t, conn, func(m wsMessage) bool { return m.Type == "error" })
		assert.Contains(t, m.Error, "rewind")
	})
}
