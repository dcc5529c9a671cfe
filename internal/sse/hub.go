package sse

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/logger"
)

type Event string

const (
	// EventChartInvalidated tells dashboards that a recorded answer made
	// their current chart stale and a refetch is worthwhile.
	EventChartInvalidated Event = "ChartInvalidated"
)

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

// Publisher is what the write path sees: fire-and-forget chart update
// notifications. Implemented by the in-process hub and by the redis bridge.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan Message
}

type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "SSEHub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan Message, 16),
	}
}

func (h *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client.Channels[channel] = true
	clients, exists := h.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true

	h.log.Debug("SSE client subscribed", "clientID", client.ID, "channel", channel)
}

func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(client.Channels, channel)
	if clients, exists := h.subscriptions[channel]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel := range client.Channels {
		if clients, exists := h.subscriptions[channel]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.subscriptions, channel)
			}
		}
	}
	close(client.Outbound)
}

// Publish fans the message out to every subscriber of its channel. Slow
// clients are skipped rather than blocked on.
func (h *Hub) Publish(ctx context.Context, msg Message) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.subscriptions[msg.Channel] {
		select {
		case client.Outbound <- msg:
		default:
			h.log.Warn("SSE client outbound full, dropping message", "clientID", client.ID, "channel", msg.Channel)
		}
	}
	return nil
}

// CompanyChannel names the per-company dashboard channel.
func CompanyChannel(companyID uuid.UUID) string {
	return "company:" + companyID.String()
}
