// Package realtime keeps track of live WebSocket connections and pushes
// notifications to the users behind them.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// EventNewNotification is the event name of a notification push.
const EventNewNotification = "new_notification"

// Frame is the envelope of every server-to-client message.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Registry maps a user to the most recently registered live connection.
// It is the only in-process shared mutable state of the service.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]*Client
	logger  *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		clients: make(map[uint]*Client),
		logger:  logger,
	}
}

// Register binds userID to c. A newer registration for the same user wins;
// the previous handle stays open but no longer receives pushes. A client that
// re-identifies as another user drops its old binding.
func (r *Registry) Register(userID uint, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.userID != 0 && c.userID != userID && r.clients[c.userID] == c {
		delete(r.clients, c.userID)
	}
	if prev, ok := r.clients[userID]; ok && prev != c {
		r.logger.Debug("connection superseded", "user_id", userID, "old", prev.ID, "new", c.ID)
	}
	r.clients[userID] = c
	c.userID = userID
	r.logger.Info("user registered", "user_id", userID, "client_id", c.ID)
}

// Unregister removes the binding that points at c. It is a no-op when c was
// never registered or has been superseded by a newer registration.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.userID == 0 {
		return
	}
	if r.clients[c.userID] != c {
		r.logger.Debug("stale connection closed", "user_id", c.userID, "client_id", c.ID)
		return
	}
	delete(r.clients, c.userID)
	r.logger.Info("user unregistered", "user_id", c.userID, "client_id", c.ID)
}

// Lookup returns the live connection of userID, if any.
func (r *Registry) Lookup(userID uint) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[userID]
	return c, ok
}

// Len reports the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Push sends event to userID if the user is connected. It never blocks: an
// offline user or a full send buffer is a silent miss, since the
// notification row remains the durable record.
func (r *Registry) Push(userID uint, event string, payload any) {
	c, ok := r.Lookup(userID)
	if !ok {
		r.logger.Debug("user offline, push skipped", "user_id", userID, "event", event)
		return
	}

	frame, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		r.logger.Error("encode push frame", "user_id", userID, "event", event, "error", err)
		return
	}
	if !c.enqueue(frame) {
		r.logger.Warn("push dropped", "user_id", userID, "client_id", c.ID, "event", event)
	}
}

// Close disconnects every registered client. It is called on server shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.clients))
	for id, c := range r.clients {
		clients = append(clients, c)
		delete(r.clients, id)
	}
	r.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}
