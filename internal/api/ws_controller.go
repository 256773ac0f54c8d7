package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The back office runs behind the same reverse proxy; origin
		// checks belong there.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeDashboardWS upgrades a dashboard page to a WebSocket and keeps it
// subscribed to order events until it disconnects.
func ServeDashboardWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	DashboardHub.AddClient(conn)
	log.Printf("📊 Dashboard connected. Total connections: %d", DashboardHub.GetClientsCount())

	defer func() {
		DashboardHub.RemoveClient(conn)
		log.Printf("📊 Dashboard disconnected. Remaining connections: %d", DashboardHub.GetClientsCount())
	}()

	// Drain client messages (ping/pong keepalive only).
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ WebSocket error: %v", err)
			}
			break
		}
	}
}
