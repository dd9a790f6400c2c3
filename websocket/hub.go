package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the admin live feed payload: one entry per store mutation so the
// panel can update a single document instead of re-reading whole collections.
type Event struct {
	Collection string `json:"collection"`
	Action     string `json:"action"` // created | updated | deleted
	DocID      string `json:"docId"`
}

type Client struct {
	Conn *websocket.Conn
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan Event, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.Conn] = true
			clientsMu.Unlock()
			log.Printf("Admin feed client registered (%d connected)", len(clients))
		case client := <-Unregister:
			clientsMu.Lock()
			delete(clients, client.Conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			stale := make([]*websocket.Conn, 0)
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending event to admin feed client: %v", err)
					conn.Close()
					stale = append(stale, conn)
				}
			}
			clientsMu.RUnlock()
			if len(stale) > 0 {
				clientsMu.Lock()
				for _, conn := range stale {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish never blocks the mutating request. If the hub is saturated or not
// running the event is dropped, the feed is best-effort by contract.
func Publish(collection, action, docID string) {
	select {
	case Broadcast <- Event{Collection: collection, Action: action, DocID: docID}:
	default:
		log.Printf("Admin feed buffer full, dropped %s/%s event for %s", collection, action, docID)
	}
}
