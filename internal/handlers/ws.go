package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/knowbargain/knowbargain/internal/types"
)

var (
	feedClients   = make(map[*websocket.Conn]bool)
	feedClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

const (
	DealEventCreated      = "deal_created"
	DealEventPriceChanged = "price_changed"
)

type DealEvent struct {
	Type   string  `json:"type"`
	DealID uint    `json:"deal_id"`
	Title  string  `json:"title,omitempty"`
	Price  float64 `json:"price"`
}

// BroadcastDealEvent pushes an event to every connected feed client so the
// deal list can refresh without polling.
func BroadcastDealEvent(event DealEvent) {
	feedClientsMu.RLock()
	if len(feedClients) == 0 {
		feedClientsMu.RUnlock()
		return
	}

	// Copy the client set so the lock is not held while writing.
	clients := make([]*websocket.Conn, 0, len(feedClients))
	for conn := range feedClients {
		clients = append(clients, conn)
	}
	feedClientsMu.RUnlock()

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Failed to broadcast deal event: %v", err)
			feedClientsMu.Lock()
			delete(feedClients, conn)
			feedClientsMu.Unlock()
			conn.Close()
		}
	}
}

// DealFeed upgrades the request to a websocket and keeps the connection in
// the broadcast set until it closes.
func DealFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	feedClientsMu.Lock()
	feedClients[conn] = true
	feedClientsMu.Unlock()

	defer func() {
		feedClientsMu.Lock()
		delete(feedClients, conn)
		feedClientsMu.Unlock()
		conn.Close()

		log.Println("Deal feed connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "Deal feed connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for ping: %v", err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for deal feed client: %v", err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Deal feed websocket error: %v", err)
			}
			break
		}
	}
}
