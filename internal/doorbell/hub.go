package doorbell

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jcaldw/trickortreth/internal/model"
)

// EventVisitCreated is emitted when a visitor knocks on the homeowner's door
const EventVisitCreated = "visit_created"

// Hub fans doorbell events out to the SSE clients of a single homeowner
type Hub struct {
	homeownerFID model.FID
	clients      map[*Client]bool
	mu           sync.RWMutex
	logger       *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// NewHub creates a Hub for one homeowner
func NewHub(homeownerFID model.FID, logger *slog.Logger) *Hub {
	return &Hub{
		homeownerFID: homeownerFID,
		clients:      make(map[*Client]bool),
		logger:       logger.With(slog.Int64("homeowner_fid", int64(homeownerFID))),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan []byte, 256),
		done:         make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("doorbell hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("doorbell client registered",
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("doorbell client unregistered",
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("doorbell broadcast partial failure",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("doorbell hub stopped")
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a raw message to all clients. Drops the message rather
// than blocking when the hub's buffer is full.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("doorbell broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data.
// Each line of multi-line data gets its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	for _, line := range splitLines(data) {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// Registry manages the per-homeowner hubs
type Registry struct {
	hubs   map[model.FID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewRegistry creates a new Registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		hubs:   make(map[model.FID]*Hub),
		logger: logger.With(slog.String("component", "doorbell")),
	}
}

// GetOrCreateHub returns the hub for a homeowner, creating and starting
// one if it doesn't exist
func (r *Registry) GetOrCreateHub(homeownerFID model.FID) *Hub {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hub, ok := r.hubs[homeownerFID]; ok {
		return hub
	}

	hub := NewHub(homeownerFID, r.logger)
	r.hubs[homeownerFID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a homeowner, or nil if it doesn't exist
func (r *Registry) GetHub(homeownerFID model.FID) *Hub {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hubs[homeownerFID]
}

// NotifyVisitCreated broadcasts a visit_created event to the homeowner's
// hub if anyone is listening. A homeowner with no open connection simply
// misses the live ping; the visit is still in their queue.
func (r *Registry) NotifyVisitCreated(visit *model.Visit) {
	hub := r.GetHub(visit.HomeownerFID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(EventVisitCreated,
		`{"visit_id":"`+string(visit.ID)+`","visitor_fid":`+strconv.FormatInt(int64(visit.VisitorFID), 10)+`}`)
}

// CleanupEmptyHubs removes hubs with no clients
func (r *Registry) CleanupEmptyHubs() {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for fid, hub := range r.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(r.hubs, fid)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("doorbell empty hubs cleaned up", slog.Int("removed", removed))
	}
}

// RemoveHub removes and closes a hub
func (r *Registry) RemoveHub(homeownerFID model.FID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hub, ok := r.hubs[homeownerFID]; ok {
		hub.Close()
		delete(r.hubs, homeownerFID)
	}
}
