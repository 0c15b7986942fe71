package handler

import (
	"context"
	"os"
	"strings"

	"gammanotes-be/internal/pkg/logger"
	internalWS "gammanotes-be/internal/websocket"
	"gammanotes-be/pkg/events"
	pktNats "gammanotes-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SyncHandler bridges bus events to connected websocket clients so an open
// client sees notebook, page, quiz and billing changes as they happen.
type SyncHandler struct {
	hub        *internalWS.Hub
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewSyncHandler(hub *internalWS.Hub, sub *pktNats.Subscriber, log logger.ILogger) *SyncHandler {
	return &SyncHandler{
		hub:        hub,
		subscriber: sub,
		logger:     log,
	}
}

// Start attaches a durable consumer for every event subject and forwards
// user-scoped events to the hub. No-op when NATS is not configured.
func (h *SyncHandler) Start() error {
	if h.subscriber == nil {
		h.logger.Warn("SyncHandler", "NATS not configured, realtime sync disabled", nil)
		return nil
	}

	return h.subscriber.Subscribe("events.>", "realtime-sync", func(ctx context.Context, event events.Event) error {
		eventType := strings.TrimPrefix(event.EventType(), "events.")

		rawUserId, ok := event.Payload()["user_id"].(string)
		if !ok {
			// Events without an owner are not pushed to anyone.
			return nil
		}
		userId, err := uuid.Parse(rawUserId)
		if err != nil {
			h.logger.Warn("SyncHandler", "Event carries malformed user_id", map[string]interface{}{"type": eventType})
			return nil
		}

		h.hub.Send(userId, internalWS.SyncMessage{
			Type: eventType,
			Data: event.Payload(),
		})
		return nil
	})
}

// ServeWs upgrades the connection after validating the JWT. Browsers cannot
// set headers on websocket handshakes, so the token is accepted from the
// query string as well.
func (h *SyncHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user id in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SyncHandler", "Websocket session started", map[string]interface{}{"user_id": userId})
			internalWS.ServeWs(h.hub, conn, userId)
			h.logger.Info("SyncHandler", "Websocket session ended", map[string]interface{}{"user_id": userId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *SyncHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
