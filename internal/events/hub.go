// Package events fans game lifecycle events out to subscribers.
package events

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/cipherplay/cipherrps/internal/model"
)

// Publisher is the surface the game controller publishes through
type Publisher interface {
	Publish(event model.Event)
}

const sendBufferSize = 64

// Subscriber is a registered event consumer
type Subscriber struct {
	// C delivers serialized events. It is closed when the subscriber is
	// unregistered or the hub shuts down.
	C chan []byte
}

// Hub manages event subscribers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]bool
	logger      *slog.Logger

	register   chan *Subscriber
	unregister chan *Subscriber
	broadcast  chan []byte
	done       chan struct{}
}

// Ensure Hub implements Publisher
var _ Publisher = (*Hub)(nil)

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]bool),
		logger:      logger.With(slog.String("component", "events-hub")),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan []byte, 256),
		done:        make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("events hub started")
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			count := len(h.subscribers)
			h.mu.Unlock()
			h.logger.Info("subscriber registered", slog.Int("total_subscribers", count))

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.C)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for sub := range h.subscribers {
				select {
				case sub.C <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("event dropped for slow subscribers", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for sub := range h.subscribers {
				close(sub.C)
				delete(h.subscribers, sub)
			}
			h.mu.Unlock()
			h.logger.Info("events hub stopped")
			return
		}
	}
}

// Subscribe registers a new subscriber
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.C)
	}
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// after the hub has shut down.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Publish serializes an event and broadcasts it to all subscribers
func (h *Hub) Publish(event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to serialize event",
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("event dropped - hub buffer full",
			slog.String("event_type", string(event.Type)))
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// SubscriberCount returns the number of registered subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
