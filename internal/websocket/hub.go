package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// Hub maintains the set of connected admin clients and broadcasts activity
// events to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound messages for all connected clients.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastEvent pushes an activity event to every connected client. It
// satisfies the event service's broadcaster interface.
func (h *Hub) BroadcastEvent(event models.Event) {
	data, err := json.Marshal(Message{Action: "event", Payload: event})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode event message")
		return
	}
	h.Broadcast <- data
}
