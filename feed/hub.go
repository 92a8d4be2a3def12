// Package feed mirrors pipeline output over a WebSocket endpoint so demo
// UIs can watch action items and search results arrive live. The console
// remains the primary sink.
package feed

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/ojusave/rtms-perplexity/types"
)

// Event is one feed message.
type Event struct {
	Type         string              `json:"type"`
	MeetingUUID  string              `json:"meeting_uuid"`
	ActionItem   *types.ActionItem   `json:"action_item,omitempty"`
	SearchResult *types.SearchResult `json:"search_result,omitempty"`
}

// Hub broadcasts events to all connected feed clients.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewHub returns a hub with no clients.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

// Register mounts the /feed route with the upgrade middleware.
func (h *Hub) Register(app *fiber.App) {
	app.Use("/feed", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/feed", websocket.New(h.serve))
}

func (h *Hub) serve(ws *websocket.Conn) {
	id := uuid.NewString()
	h.mu.Lock()
	h.clients[id] = ws
	h.mu.Unlock()
	log.Printf("feed: client %s connected", id)

	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
		_ = ws.Close()
		log.Printf("feed: client %s disconnected", id)
	}()

	// inbound messages are ignored; the read loop only detects closure
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishActionItem broadcasts a newly accepted action item.
func (h *Hub) PublishActionItem(meetingUUID string, item types.ActionItem) {
	h.broadcast(Event{Type: "action_item", MeetingUUID: meetingUUID, ActionItem: &item})
}

// PublishSearchResult broadcasts a resolved information need.
func (h *Hub) PublishSearchResult(meetingUUID string, result types.SearchResult) {
	h.broadcast(Event{Type: "search_result", MeetingUUID: meetingUUID, SearchResult: &result})
}

// Clients returns the number of connected feed clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ws := range h.clients {
		if err := ws.WriteJSON(ev); err != nil {
			log.Printf("feed: dropping client %s: %v", id, err)
			_ = ws.Close()
			delete(h.clients, id)
		}
	}
}
