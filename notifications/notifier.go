// notifications/notifier.go
package notifications

import "time"

// ClipSharedEvent is the payload pushed to a player's user when a coach
// shares a clip with them.
type ClipSharedEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ClipID      uint      `json:"clip_id"`
	ClipTitle   string    `json:"clip_title"`
	GameID      uint      `json:"game_id"`
	SenderID    uint      `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	RecipientID uint      `json:"-"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notifier delivers clip-shared events. Implementations are
// fire-and-forget: delivery failure never affects the share that
// triggered it.
type Notifier interface {
	ClipShared(event ClipSharedEvent)
}
