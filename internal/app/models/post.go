package models

import "time"

// Post represents a text post inside a community. Vote counters only ever
// increase; every vote call is an independent event, there is no undo.
type Post struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Text        string    `json:"text" db:"text"`
	Upvotes     int       `json:"upvotes" db:"upvotes"`
	Downvotes   int       `json:"downvotes" db:"downvotes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
