package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The store carries no credentials and the daemon is origin-local.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventNotice tells a connected observer which store may have changed.
// It carries no data: the observer re-reads a snapshot, exactly like an
// in-process subscriber.
type eventNotice struct {
	Store string `json:"store"`
}

// Events upgrades to WebSocket and streams change notices for both
// stores until the client disconnects. Subscriptions are released on
// every exit path.
func Events(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Warn("websocket upgrade failed", logger.Error(err))
			return
		}
		defer conn.Close()

		// Hub subscribers run synchronously inside repository writes,
		// so they must not block: a full channel drops the notice,
		// which is safe because the next one triggers the same re-read.
		notices := make(chan string, 16)
		notify := func(name string) func() {
			return func() {
				select {
				case notices <- name:
				default:
				}
			}
		}
		unsubFavorites := d.Store.Favorites.Subscribe(notify("favorites"))
		defer unsubFavorites()
		unsubGalleries := d.Store.Galleries.Subscribe(notify("galleries"))
		defer unsubGalleries()

		// Read pump: we expect no client messages, only disconnects.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case name := <-notices:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(eventNotice{Store: name}); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
