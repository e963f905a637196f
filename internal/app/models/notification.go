package models

import "time"

// Notification represents a best-effort user notification. Creation failures
// never fail the operation that triggered them.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Payload   map[string]any   `json:"payload,omitempty" db:"payload"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
