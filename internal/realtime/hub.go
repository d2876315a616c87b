package realtime

import (
	"encoding/json"
	"sync"

	"url-shortener-api/internal/models"
)

// LinksTopic is the topic every created link is announced on.
const LinksTopic = "links"

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// LinkEvent is the payload broadcast when a link is created.
type LinkEvent struct {
	Type string          `json:"type"`
	Link models.LinkView `json:"link"`
}

// Hub maintains subscribed connections per topic and broadcasts to them.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under a topic.
func (h *Hub) Register(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[topic]; !ok {
		h.subscribers[topic] = make(map[Client]struct{})
	}
	h.subscribers[topic][client] = struct{}{}
}

// Unregister removes a client; an empty topic is dropped.
func (h *Hub) Unregister(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.subscribers[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.subscribers, topic)
		}
	}
}

// Count returns the number of clients subscribed to topic.
func (h *Hub) Count(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// Broadcast sends a message to all clients of a topic and returns how many
// accepted it. Failed clients are cleaned up by their own handler.
func (h *Hub) Broadcast(topic string, message []byte) int {
	delivered := 0
	for _, c := range h.snapshot(topic) {
		if c.Send(message) {
			delivered++
		}
	}
	return delivered
}

// snapshot copies the clients of topic so sends happen without the lock.
func (h *Hub) snapshot(topic string) []Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := make([]Client, 0, len(h.subscribers[topic]))
	for c := range h.subscribers[topic] {
		clients = append(clients, c)
	}
	return clients
}

// PublishLinkCreated announces link on LinksTopic.
func (h *Hub) PublishLinkCreated(link models.LinkView) error {
	msg, err := json.Marshal(LinkEvent{Type: "link_created", Link: link})
	if err != nil {
		return err
	}
	h.Broadcast(LinksTopic, msg)
	return nil
}
