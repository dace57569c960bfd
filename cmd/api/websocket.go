package main

import (
	"fmt"
	"moviehub/proj/internal/services/favorites"
	"moviehub/proj/internal/services/search"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsQueueSize    = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// single-user local app, the browser UI may be served from another port
	CheckOrigin: func(r *http.Request) bool { return true },
}

type favoritesUpdate struct {
	Event   favorites.EventKind `json:"event"`
	MovieID int                 `json:"movie_id"`
	Count   int                 `json:"count"`
}

type wsMessage struct {
	Type      string           `json:"type"`
	Search    *search.State    `json:"search,omitempty"`
	Favorites *favoritesUpdate `json:"favorites,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// wsCommand is sent by the client: {"type":"query","query":"..."} while
// typing, {"type":"submit"} on enter.
type wsCommand struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

// liveUpdates pushes search state and favorites changes to the client and
// feeds its keystrokes to the search controller.
func (app *Application) liveUpdates(w http.ResponseWriter, r *http.Request) {
	log := app.Http.setupLogPerReq(r).With("conn_id", uuid.NewString())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "errMsg", err.Error())
		return
	}
	defer conn.Close()
	log.Info("websocket client connected")

	out := make(chan wsMessage, wsQueueSize)
	send := func(m wsMessage) {
		select {
		case out <- m:
		default:
			log.Warn("websocket client too slow, update dropped", "type", m.Type)
		}
	}
	unsubscribeSearch := app.Services.Search.Subscribe(func(s search.State) {
		send(wsMessage{Type: "search", Search: &s})
	})
	defer unsubscribeSearch()
	unsubscribeFavorites := app.Services.Favorites.Subscribe(func(e favorites.Event) {
		send(wsMessage{Type: "favorites", Favorites: &favoritesUpdate{
			Event:   e.Kind,
			MovieID: e.MovieID,
			Count:   len(e.Favorites),
		}})
	})
	defer unsubscribeFavorites()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var cmd wsCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn("websocket read failed", "errMsg", err.Error())
				}
				return
			}
			switch cmd.Type {
			case "query":
				app.Services.Search.SetQuery(cmd.Query)
			case "submit":
				app.Services.Search.Submit()
			default:
				send(wsMessage{Type: "error", Error: fmt.Sprintf("unknown command %q", cmd.Type)})
			}
		}
	}()

	state := app.Services.Search.State()
	write := func(m wsMessage) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(m)
	}
	if err := write(wsMessage{Type: "search", Search: &state}); err != nil {
		log.Warn("websocket write failed", "errMsg", err.Error())
		return
	}
	for {
		select {
		case <-done:
			log.Info("websocket client disconnected")
			return
		case m := <-out:
			if err := write(m); err != nil {
				log.Warn("websocket write failed", "errMsg", err.Error())
				return
			}
		}
	}
}
