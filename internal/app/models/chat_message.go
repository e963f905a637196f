package models

import "time"

// ChatMessage represents a message in a community chat room.
type ChatMessage struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
