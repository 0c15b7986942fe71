package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"gammanotes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries sync messages between instances so a user connected
// to another node still receives their events.
const redisChannel = "sync_events"

// SyncMessage is the frame pushed to connected clients when server-side
// state changes (a page saved elsewhere, a quiz graded, a payment settled).
type SyncMessage struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type Hub struct {
	// UserID -> connected clients, one entry per device.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional cross-instance fan-out. Nil means single-instance mode.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a sync message to every device the user has connected, then
// relays it over Redis for clients attached to other instances.
func (h *Hub) Send(userID uuid.UUID, msg SyncMessage) {
	data, _ := json.Marshal(msg)

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		h.deliver(client, data)
	}

	if h.rdb != nil {
		frame, _ := json.Marshal(redisFrame{TargetUserID: userID.String(), Message: data})
		h.rdb.Publish(context.Background(), redisChannel, frame)
	}
}

// Broadcast pushes a sync message to every connected client on every
// instance.
func (h *Hub) Broadcast(msg SyncMessage) {
	data, _ := json.Marshal(msg)

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.deliver(client, data)
		}
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		frame, _ := json.Marshal(redisFrame{TargetUserID: "*", Message: data})
		h.rdb.Publish(context.Background(), redisChannel, frame)
	}
}

// deliver drops the client when its send buffer is full rather than
// blocking the hub.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		go func() { h.unregister <- client }()
	}
}

type redisFrame struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var frame redisFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			h.logger.Warn("Hub", "Bad redis frame", map[string]interface{}{"error": err.Error()})
			continue
		}

		if frame.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					h.deliver(client, frame.Message)
				}
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(frame.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()

		for _, client := range clients {
			h.deliver(client, frame.Message)
		}
	}
}
