package models

import "time"

// Announcement represents a community announcement.
type Announcement struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	Title       string    `json:"title" db:"title"`
	Body        string    `json:"body" db:"body"`
	Pinned      bool      `json:"pinned" db:"pinned"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
