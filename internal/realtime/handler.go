package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const identifyTimeout = 5 * time.Second

// Handler upgrades HTTP requests to WebSocket connections and binds them to
// users in the registry.
type Handler struct {
	registry   *Registry
	identifier Identifier
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates a Handler. An empty allowedOrigins list, or one that
// contains "*", accepts any origin.
func NewHandler(registry *Registry, identifier Identifier, allowedOrigins []string, logger *slog.Logger) *Handler {
	h := &Handler{
		registry:   registry,
		identifier: identifier,
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, r.Header.Get("Origin"))
		},
	}
	return h
}

// RegisterRoutes registers the WebSocket endpoint
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.ServeWS)
}

// ServeWS runs one connection until the transport is torn down. The client
// identifies itself with {"event":"register","user_id":N}; disconnect
// unregisters it.
func (h *Handler) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	client := NewClient(conn)
	h.logger.Debug("connection opened", "client_id", client.ID, "remote", c.RealIP())
	go client.writePump()

	defer func() {
		h.registry.Unregister(client)
		client.Close()
		h.logger.Debug("connection closed", "client_id", client.ID)
	}()

	h.readPump(c.Request().Context(), client)
	return nil
}

func (h *Handler) readPump(ctx context.Context, client *Client) {
	conn := client.conn
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", "client_id", client.ID, "error", err)
			}
			return
		}

		var msg RegisterMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.reply(client, "error", map[string]string{"message": "invalid message"})
			continue
		}

		switch msg.Event {
		case "register":
			h.register(ctx, client, msg)
		default:
			h.reply(client, "error", map[string]string{"message": "unknown event"})
		}
	}
}

func (h *Handler) register(ctx context.Context, client *Client, msg RegisterMessage) {
	ctx, cancel := context.WithTimeout(ctx, identifyTimeout)
	defer cancel()

	userID, err := h.identifier.Identify(ctx, msg)
	if err != nil {
		h.logger.Info("register rejected", "client_id", client.ID, "error", err)
		h.reply(client, "error", map[string]string{"message": "unauthorized"})
		return
	}
	h.registry.Register(userID, client)
	h.reply(client, "registered", map[string]uint{"user_id": userID})
}

func (h *Handler) reply(client *Client, event string, data any) {
	frame, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return
	}
	client.enqueue(frame)
}
