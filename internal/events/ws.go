package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // OK for local use; restrict in production
	},
}

// WSWelcome is the first frame every WebSocket feed client receives,
// carrying the current subscriber counts.
type WSWelcome struct {
	Type       string `json:"type"`
	Transport  string `json:"transport"`
	TCPClients int    `json:"tcp_clients"`
	WSClients  int    `json:"ws_clients"`
}

// WSHandler upgrades the connection and subscribes it to the catalog
// event feed. Clients receive the same JSON events as the TCP feed.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.AddWS(ws)
		log.Println("[events] ws client connected")

		stats := hub.Stats()
		_ = ws.WriteJSON(WSWelcome{
			Type:       "welcome",
			Transport:  "websocket",
			TCPClients: stats.TCPClients,
			WSClients:  stats.WSClients,
		})

		// Keep connection alive (ignore incoming messages)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		log.Println("[events] ws client disconnected")
	}
}
