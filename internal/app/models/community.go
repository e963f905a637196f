package models

import "time"

// Community represents a campus community. Top-level communities have a nil
// ParentID; sub-communities reference their parent, forming a two-level tree.
// MemberCount is a cached value and must match the live membership count after
// every join/leave.
type Community struct {
	ID             int64            `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	ParentID       *int64           `json:"parentId,omitempty" db:"parent_id"`
	Description    string           `json:"description" db:"description"`
	PrivacySetting CommunityPrivacy `json:"privacySetting" db:"privacy_setting"`
	Rules          string           `json:"rules,omitempty" db:"rules"`
	Tags           []string         `json:"tags,omitempty" db:"tags"`
	MaxMembers     *int             `json:"maxMembers,omitempty" db:"max_members"`
	MemberCount    int              `json:"memberCount" db:"member_count"`
	CreatedBy      int64            `json:"createdBy" db:"created_by"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// Membership represents a user belonging to a community. The
// (community_id, user_id) pair is unique.
type Membership struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	UserID      int64     `json:"userId" db:"user_id"`
	JoinedAt    time.Time `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
