package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

const (
	// AdminRoom receives every order event.
	AdminRoom = "admin"

	// AgentsRoom receives orders that become ready without an agent.
	AgentsRoom = "delivery_agents"
)

type roomMessage struct {
	room    string
	payload []byte
}

// Hub keeps websocket clients grouped in rooms and pushes order events to
// the rooms of the parties involved. A room is named after a ledger party,
// e.g. "customer:<uuid>".
type Hub struct {
	rooms map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	done       chan struct{}

	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHub creates a hub. It serves nothing until Run is called.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws_hub"),
	}
}

// Run owns the rooms until ctx is cancelled, then drops every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, clients := range h.rooms {
				for c := range clients {
					h.dropLocked(c)
				}
			}
			h.mu.Unlock()
			return nil

		case c := <-h.register:
			h.mu.Lock()
			for _, room := range c.rooms {
				if h.rooms[room] == nil {
					h.rooms[room] = make(map[*Client]struct{})
				}
				h.rooms[room][c] = struct{}{}
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(c)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.payload:
				default:
					h.logger.Warn("dropping slow websocket client", "room", msg.room)
					h.dropLocked(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropLocked removes c from all its rooms and closes its send channel once.
func (h *Hub) dropLocked(c *Client) {
	registered := false
	for _, room := range c.rooms {
		clients, ok := h.rooms[room]
		if !ok {
			continue
		}
		if _, ok := clients[c]; ok {
			registered = true
			delete(clients, c)
		}
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	if registered {
		close(c.send)
	}
}

// Publish queues each event for the rooms it concerns.
func (h *Hub) Publish(ctx context.Context, events []order.Event) error {
	for _, e := range events {
		payload, err := json.Marshal(newOrderEventMessage(e))
		if err != nil {
			return err
		}
		for _, room := range RoomsFor(e) {
			select {
			case h.broadcast <- roomMessage{room: room, payload: payload}:
			case <-h.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// RoomsFor lists the rooms that hear about e.
func RoomsFor(e order.Event) []string {
	rooms := []string{AdminRoom}
	if p, err := kernel.Customer(e.CustomerID); err == nil {
		rooms = append(rooms, p.String())
	}
	if p, err := kernel.Restaurant(e.RestaurantID); err == nil {
		rooms = append(rooms, p.String())
	}
	if e.DeliveryAgentID != nil {
		if p, err := kernel.DeliveryAgent(*e.DeliveryAgentID); err == nil {
			rooms = append(rooms, p.String())
		}
	} else if e.Status == order.Ready {
		rooms = append(rooms, AgentsRoom)
	}
	return rooms
}

// RoomsForActor lists the rooms a connecting actor joins.
func RoomsForActor(a actor.Actor) ([]string, error) {
	if a.IsAdmin() {
		return []string{AdminRoom}, nil
	}
	p, err := a.Party()
	if err != nil {
		return nil, err
	}
	rooms := []string{p.String()}
	if a.Is(actor.DeliveryAgent) {
		rooms = append(rooms, AgentsRoom)
	}
	return rooms, nil
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
