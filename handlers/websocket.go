// handlers/websocket.go - Notification stream
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects plain HTTP requests on the stream route.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket holds a connection open and feeds it clip-shared
// events for the authenticated user. Reads are discarded; the socket is
// push-only.
// GET /ws/notifications
func NotificationSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDRaw := conn.Locals("userId")
		var userID uint
		switch v := userIDRaw.(type) {
		case float64:
			userID = uint(v)
		case uint:
			userID = v
		default:
			conn.Close()
			return
		}

		notificationHub.Register(userID, conn)
		defer notificationHub.Unregister(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Notification socket closed unexpectedly for user %d: %v", userID, err)
				}
				return
			}
		}
	})
}
