package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is handled at the HTTP layer; the feed stream carries only
		// public events.
		return true
	},
}

// FeedWebSocket streams feed events (new public diaries, new comments) to
// the client. Delivery is best-effort; clients refetch on reconnect.
func FeedWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := services.RegisterFeedConnection(conn)
	defer services.UnregisterFeedConnection(id)

	// Reads are only used to detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
